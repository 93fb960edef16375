package auth

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// Field validation errors. Their text is shown beside the form field.
var (
	ErrUsernameRequired = errors.New("Username is required")
	ErrUsernameTooShort = errors.New("Username must be at least 3 characters")
	ErrEmailRequired    = errors.New("Email is required")
	ErrInvalidEmail     = errors.New("Please enter a valid email")
	ErrPasswordRequired = errors.New("Password is required")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
	ErrConfirmRequired  = errors.New("Please confirm your password")
	ErrPasswordMismatch = errors.New("Passwords do not match")
)

// Form field names.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldConfirm  = "confirm"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError maps form fields to their first problem.
type ValidationError struct {
	Fields map[string]error
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name].Error())
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Unwrap exposes the per-field errors to errors.Is.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, err := range e.Fields {
		errs = append(errs, err)
	}
	return errs
}

// Field returns the message for name, or "".
func (e *ValidationError) Field(name string) string {
	if e == nil {
		return ""
	}
	if err, ok := e.Fields[name]; ok {
		return err.Error()
	}
	return ""
}

// FieldMessage extracts the message for field from err, if err is a
// ValidationError.
func FieldMessage(err error, field string) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Field(field)
	}
	return ""
}

// SignupForm is the sign-up input.
type SignupForm struct {
	Username string
	Email    string
	Password string
	Confirm  string
}

// LoginForm is the login input.
type LoginForm struct {
	Email    string
	Password string
}

// Validate returns a *ValidationError listing every invalid field, or nil.
func (f SignupForm) Validate() error {
	fields := map[string]error{}

	switch name := strings.TrimSpace(f.Username); {
	case name == "":
		fields[FieldUsername] = ErrUsernameRequired
	case len(f.Username) < minUsernameLen:
		fields[FieldUsername] = ErrUsernameTooShort
	}
	if err := validateEmail(f.Email); err != nil {
		fields[FieldEmail] = err
	}
	switch {
	case f.Password == "":
		fields[FieldPassword] = ErrPasswordRequired
	case len(f.Password) < minPasswordLen:
		fields[FieldPassword] = ErrPasswordTooShort
	}
	switch {
	case f.Confirm == "":
		fields[FieldConfirm] = ErrConfirmRequired
	case f.Confirm != f.Password:
		fields[FieldConfirm] = ErrPasswordMismatch
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate returns a *ValidationError listing every invalid field, or nil.
func (f LoginForm) Validate() error {
	fields := map[string]error{}
	if err := validateEmail(f.Email); err != nil {
		fields[FieldEmail] = err
	}
	if f.Password == "" {
		fields[FieldPassword] = ErrPasswordRequired
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateEmail(email string) error {
	switch {
	case email == "":
		return ErrEmailRequired
	case !emailPattern.MatchString(email):
		return ErrInvalidEmail
	}
	return nil
}
