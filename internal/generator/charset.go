package generator

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/StephanNaro/id-registry/internal/domain"
)

// maxNumericRedraws bounds the redraw loop for candidates that came out all
// numeric. With any non-digit in the charset the loop terminates almost
// immediately; the bound exists to fail fast on pathological configuration.
const maxNumericRedraws = 100

// CharsetGenerator draws each character independently and uniformly from the
// configured charset. Candidates consisting entirely of digits are redrawn:
// identifiers must be visually distinguishable from plain numeric keys.
type CharsetGenerator struct{}

// NewCharsetGenerator creates a new CharsetGenerator.
func NewCharsetGenerator() *CharsetGenerator {
	return &CharsetGenerator{}
}

func (g *CharsetGenerator) Generate(length int, charset string) (string, error) {
	if charset == "" {
		return "", ErrEmptyCharset
	}
	if length < domain.MinIDLength || length > domain.MaxIDLength {
		return "", fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidLength, length, domain.MinIDLength, domain.MaxIDLength)
	}
	if !hasNonDigit(charset) {
		// Every draw would be rejected below; flag the configuration instead.
		return "", ErrDigitsOnlyCharset
	}

	for attempt := 0; attempt < maxNumericRedraws; attempt++ {
		id, err := gonanoid.Generate(charset, length)
		if err != nil {
			return "", fmt.Errorf("failed to draw candidate: %w", err)
		}
		if isAllNumeric(id) {
			continue
		}
		return id, nil
	}

	return "", fmt.Errorf("%w: no non-numeric candidate after %d draws", ErrDigitsOnlyCharset, maxNumericRedraws)
}

// isAllNumeric reports whether s consists only of ASCII digits.
func isAllNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasNonDigit(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return true
		}
	}
	return false
}

var _ Generator = (*CharsetGenerator)(nil)
