package main

import (
	"fmt"

	"github.com/sabaq/sabaq/core/user"
)

func (cli *commandLine) listUsers() error {
	users, err := cli.usrSvc.QueryAll(ctxBG())
	if err != nil {
		return err
	}
	for _, usr := range users {
		fmt.Printf("%4d  %-8s  %-30s  %s\n", usr.ID, usr.Role, usr.Email, usr.FullName())
	}
	return nil
}

func (cli *commandLine) editUser(id int, email, firstName, lastName, role string) error {
	usr, err := cli.usrSvc.Update(ctxBG(), id, user.UpdateUser{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	})
	if err != nil {
		return err
	}
	fmt.Printf("updated user %d (%s)\n", usr.ID, usr.Email)
	return nil
}

func (cli *commandLine) registerAccount(email, firstName, lastName string) error {
	creds, err := cli.usrSvc.Register(ctxBG(), user.RegisterAccount{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}
	fmt.Println("account registered; credentials emailed to the account holder")
	fmt.Printf("username: %s\npassword: %s\n", creds.Username, creds.Password)
	return nil
}
