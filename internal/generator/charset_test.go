package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StephanNaro/id-registry/internal/domain"
)

func TestGenerateUsesConfiguredShape(t *testing.T) {
	gen := NewCharsetGenerator()

	id, err := gen.Generate(domain.DefaultIDLength, domain.DefaultCharset)
	require.NoError(t, err)
	assert.Len(t, id, domain.DefaultIDLength)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(domain.DefaultCharset, r), "character %q not in charset", r)
	}
}

func TestGenerateSmallCharset(t *testing.T) {
	gen := NewCharsetGenerator()
	const charset = "AB01"

	for i := 0; i < 50; i++ {
		id, err := gen.Generate(8, charset)
		require.NoError(t, err)
		assert.Len(t, id, 8)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(charset, r), "character %q not in charset", r)
		}
		assert.False(t, isAllNumeric(id), "generated %q is purely numeric", id)
	}
}

func TestGenerateNeverAllNumeric(t *testing.T) {
	gen := NewCharsetGenerator()

	// Digit-heavy charset: an unfiltered generator would regularly emit
	// all-numeric candidates at this length.
	for i := 0; i < 200; i++ {
		id, err := gen.Generate(8, "0123456789X")
		require.NoError(t, err)
		assert.False(t, isAllNumeric(id), "generated %q is purely numeric", id)
	}
}

func TestGenerateEmptyCharset(t *testing.T) {
	gen := NewCharsetGenerator()

	_, err := gen.Generate(12, "")
	assert.ErrorIs(t, err, ErrEmptyCharset)
}

func TestGenerateLengthOutOfBounds(t *testing.T) {
	gen := NewCharsetGenerator()

	for _, length := range []int{0, domain.MinIDLength - 1, domain.MaxIDLength + 1} {
		_, err := gen.Generate(length, domain.DefaultCharset)
		assert.ErrorIs(t, err, ErrInvalidLength, "length %d", length)
	}
}

func TestGenerateDigitsOnlyCharset(t *testing.T) {
	gen := NewCharsetGenerator()

	_, err := gen.Generate(8, "0123456789")
	assert.ErrorIs(t, err, ErrDigitsOnlyCharset)
}

func TestIsAllNumeric(t *testing.T) {
	assert.True(t, isAllNumeric("00000000"))
	assert.True(t, isAllNumeric("123456"))
	assert.False(t, isAllNumeric("1234567a"))
	assert.False(t, isAllNumeric("A0000000"))
}
