package models

import (
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 6
	MaxBioLength      = 500
)

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterData is the registration form.
type RegisterData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio,omitempty"`
}

// ValidationErrors maps a form field to the message shown next to it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Validate checks the login form before anything is sent.
func (c Credentials) Validate() error {
	errs := ValidationErrors{}
	checkEmail(errs, c.Email)
	if c.Password == "" {
		errs["password"] = "Required"
	}
	return errs.orNil()
}

// Validate checks the registration form before anything is sent.
func (r RegisterData) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "Required"
	}
	checkEmail(errs, r.Email)
	switch {
	case r.Password == "":
		errs["password"] = "Required"
	case utf8.RuneCountInString(r.Password) < MinPasswordLength:
		errs["password"] = "Must be at least 6 characters"
	}
	if utf8.RuneCountInString(r.Bio) > MaxBioLength {
		errs["bio"] = "Must be 500 characters or less"
	}
	return errs.orNil()
}

func checkEmail(errs ValidationErrors, email string) {
	if strings.TrimSpace(email) == "" {
		errs["email"] = "Required"
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".") {
		errs["email"] = "Invalid email address"
	}
}
