package main

import (
	"context"
	"fmt"

	"github.com/sabaq/sabaq/core/course"
)

func ctxBG() context.Context { return context.Background() }

func newCourse(title, description string) course.NewCourse {
	return course.NewCourse{Title: title, Description: description}
}

func (cli *commandLine) login(uname, pwd string) error {
	session, err := cli.usrSvc.Login(ctxBG(), uname, pwd)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", uname, session.Role)
	fmt.Printf("export %s=%s\n", tokenEnvVar, session.Token)
	return nil
}

func (cli *commandLine) listCourses() error {
	courses, err := cli.courseSvc.QueryAll(ctxBG())
	if err != nil {
		return err
	}
	for _, crs := range courses {
		fmt.Printf("%4d  %s\n", crs.ID, crs.Title)
	}
	return nil
}

func (cli *commandLine) showCourse(id int) error {
	crs, err := cli.courseSvc.GetByID(ctxBG(), id)
	if err != nil {
		return err
	}
	fmt.Printf("%d  %s\n%s\n", crs.ID, crs.Title, crs.Description)
	if crs.ThumbnailURL.Valid {
		fmt.Printf("thumbnail: %s\n", crs.ThumbnailURL.String)
	}

	videos, err := cli.courseSvc.QueryVideos(ctxBG(), id)
	if err != nil {
		return err
	}
	for _, v := range videos {
		fmt.Printf("  video %4d  %s  %s\n", v.ID, v.Title, v.VideoURL)
	}
	return nil
}

func (cli *commandLine) grantAccess(userID, courseID, days int) error {
	grant, err := cli.courseSvc.GrantAccess(ctxBG(), course.NewGrant{
		UserID:       userID,
		CourseID:     courseID,
		DurationDays: days,
	})
	if err != nil {
		return err
	}
	fmt.Printf("granted user %d access to course %d for %d days\n", userID, courseID, days)
	if !grant.ExpiresAt.IsZero() {
		fmt.Printf("expires: %s\n", grant.ExpiresAt)
	}
	return nil
}
