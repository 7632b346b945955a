package apisvc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/sabaq/sabaq/core"
	"github.com/sabaq/sabaq/core/user"
)

var _ user.Repository = (*Client)(nil)

// Login exchanges credentials for a bearer token and installs the
// resulting session on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*core.Session, error) {
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &out); err != nil {
		return nil, err
	}

	session, err := core.NewSession(out.Token)
	if err != nil {
		return nil, errors.Wrap(err, "parsing login token")
	}
	c.SetSession(session)
	return session, nil
}

func (c *Client) RegisterAccount(ctx context.Context, ra user.RegisterAccount) (user.Credentials, error) {
	var out struct {
		Credentials user.Credentials `json:"credentials"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register_account", ra, &out); err != nil {
		return user.Credentials{}, err
	}
	return out.Credentials, nil
}

func (c *Client) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var out struct {
		Users []user.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) GetUserByID(ctx context.Context, id int) (user.User, error) {
	var out struct {
		User user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &out); err != nil {
		return user.User{}, err
	}
	return out.User, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, uu user.UpdateUser) (user.User, error) {
	var out struct {
		User user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), uu, &out); err != nil {
		return user.User{}, err
	}
	return out.User, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}
