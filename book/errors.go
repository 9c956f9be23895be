package book

import "errors"

var (
	ErrNotFound   = errors.New("book not found")
	ErrValidation = errors.New("invalid book")
)
