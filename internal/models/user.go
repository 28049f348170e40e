package models

import "github.com/julianstephens/habitrackr/internal/validation"

// User is a locally registered account. Passwords are stored and compared in
// plaintext; there is no real authentication.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (u *User) Validate() error {
	return validation.Struct(u)
}

// Profile is the exportable subset of a user
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Profile() Profile {
	return Profile{Name: u.Name, Email: u.Email}
}
