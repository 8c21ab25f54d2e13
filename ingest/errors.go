package ingest

import (
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
	ErrFormat   = errors.New("unsupported format")
)
