package report

import "errors"

var (
	ErrNotFound      = errors.New("report not found")
	ErrInvalidStatus = errors.New("invalid report status")
)
