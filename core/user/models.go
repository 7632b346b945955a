package user

import (
	"time"

	"github.com/sabaq/sabaq/core"
)

// Role markers as carried in the session and on user records.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) FullName() string {
	return core.CleanString(u.FirstName + " " + u.LastName)
}

// Credentials are generated by the backend for a freshly registered
// account; they are shown once and forwarded to the account holder.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterAccount contains information needed to register a new student account.
type RegisterAccount struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

func (ra *RegisterAccount) Validate() error {
	ra.Email = core.CleanString(ra.Email, true /* lower */)
	ra.FirstName = core.CleanString(ra.FirstName)
	ra.LastName = core.CleanString(ra.LastName)
	return core.Validate.Struct(ra)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" validate:"omitempty,oneof=admin student"`
	IsActive  *bool  `json:"is_active"`
}

func (uu *UpdateUser) Validate(orig User) error {
	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = orig.Email
	}
	if first := core.CleanString(uu.FirstName); first != "" {
		uu.FirstName = first
	} else {
		uu.FirstName = orig.FirstName
	}
	if last := core.CleanString(uu.LastName); last != "" {
		uu.LastName = last
	} else {
		uu.LastName = orig.LastName
	}
	if uu.Role == "" {
		uu.Role = orig.Role
	}
	return core.Validate.Struct(uu)
}
