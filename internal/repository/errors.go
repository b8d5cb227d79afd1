package repository

import "errors"

var (
	ErrDBNotReady = errors.New("database not initialized")
	ErrNotFound   = errors.New("not found")
)
