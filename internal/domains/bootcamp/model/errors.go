package model

import "errors"

var (
	ErrBootcampNotFound = errors.New("bootcamp not found")
	ErrDuplicateName    = errors.New("bootcamp name already exists")
)
