package user

import (
	"context"
	"errors"
	"net/mail"

	"github.com/sabaq/sabaq/core"
)

var ErrNotFound = errors.New("user not found")

const credentialsEmailTemplate = "user/credentials"

func init() {
	core.RegisterEmailTemplate(credentialsEmailTemplate, `Hi {{ .Name }},

An account has been created for you.

Username: {{ .Credentials.Username }}
Password: {{ .Credentials.Password }}

Please change your password after your first login.
`)
}

type (
	// Repository is the remote user and auth API; there is no local storage.
	Repository interface {
		Login(ctx context.Context, username, password string) (*core.Session, error)
		RegisterAccount(ctx context.Context, ra RegisterAccount) (Credentials, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		UpdateUser(ctx context.Context, id int, uu UpdateUser) (User, error)
		DeleteUser(ctx context.Context, id int) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) Login(ctx context.Context, username, password string) (*core.Session, error) {
	return svc.repo.Login(ctx, core.CleanString(username, true /* lower */), password)
}

// Register creates a new student account and forwards the generated
// credentials to the account holder by email.
func (svc *Service) Register(ctx context.Context, ra RegisterAccount) (Credentials, error) {
	if err := ra.Validate(); err != nil {
		return Credentials{}, err
	}
	creds, err := svc.repo.RegisterAccount(ctx, ra)
	if err != nil {
		return Credentials{}, err
	}

	name := core.CleanString(ra.FirstName + " " + ra.LastName)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: name, Address: ra.Email}},
		Subject:      "Your account is ready",
		TemplateName: credentialsEmailTemplate,
		TemplateData: struct {
			Name        string
			Credentials Credentials
		}{name, creds},
	})
	return creds, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, uu UpdateUser) (User, error) {
	orig, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if err := uu.Validate(orig); err != nil {
		return User{}, err
	}
	return svc.repo.UpdateUser(ctx, id, uu)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteUser(ctx, id)
}
