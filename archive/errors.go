package archive

import "errors"

var (
	ErrBadData     = errors.New("bad data")
	ErrVersion     = errors.New("unsupported version")
	ErrType        = errors.New("not a recorder document")
	ErrFormat      = errors.New("unknown format")
	ErrCompression = errors.New("unknown compression")
	ErrBadKey      = errors.New("bad key")
)
