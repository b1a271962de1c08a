package generator

import "errors"

// Configuration errors. These are fatal for the request that triggered them,
// not for the process: settings live in the database and can be fixed there.
var (
	ErrEmptyCharset      = errors.New("charset is empty")
	ErrInvalidLength     = errors.New("id length out of bounds")
	ErrDigitsOnlyCharset = errors.New("charset contains only digits")
)

// Generator produces random candidate identifiers. It does not check
// uniqueness; that is the repository's job via the primary-key constraint.
type Generator interface {
	Generate(length int, charset string) (string, error)
}
