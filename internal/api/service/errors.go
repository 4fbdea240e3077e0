package service

import "errors"

// Sentinel errors returned by the services. The controllers map each one to
// an HTTP status; the error text is what ends up in the response body, so
// the messages match the API contract verbatim.
var (
	// ErrPasswordMismatch is returned when the password verification field
	// does not repeat the password exactly.
	ErrPasswordMismatch = errors.New("Password and password verification do not match")

	// ErrUsernameTaken is returned when the requested username already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidEmail is returned when the registration email does not pass
	// format validation.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidCredentials is returned when a username/password pair does
	// not resolve to a user.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNameRequired is returned when a todo create or update carries no name.
	ErrNameRequired = errors.New("No name provided")

	// ErrTodoNotFound is returned when a todo id does not exist.
	ErrTodoNotFound = errors.New("Todo not found")

	// ErrTodoNotDeletable is returned when a delete names a todo that does
	// not exist. Deletes report this instead of a plain not-found.
	ErrTodoNotDeletable = errors.New("Todo can not be deleted")
)
