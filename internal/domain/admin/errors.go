package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrPermissionDenied   = errors.New("permission denied")
)
