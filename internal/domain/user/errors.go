package user

import "errors"

var (
	ErrNotFound       = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already in use")
	ErrEmailTaken     = errors.New("email already in use")
	ErrInvalidManager = errors.New("manager reference must point at a manager-role user")
)
