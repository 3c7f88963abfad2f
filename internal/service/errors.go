package service

import "errors"

var (
	// ErrNotFound signals that the referenced id or unique id has no record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUniqueID signals a unique_id collision on create.
	ErrDuplicateUniqueID = errors.New("unique_id already exists")
)
