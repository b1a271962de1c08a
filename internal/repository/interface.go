package repository

import (
	"context"
	"errors"

	"github.com/StephanNaro/id-registry/internal/domain"
)

var (
	// ErrIDExists signals a primary-key collision on insert. The generation
	// loop treats this, and only this, as retryable.
	ErrIDExists   = errors.New("identifier already exists")
	ErrIDNotFound = errors.New("identifier not found")
	// ErrIDDeleted is returned when confirming a soft-deleted identifier.
	ErrIDDeleted      = errors.New("identifier is deleted")
	ErrSettingMissing = errors.New("setting not found")
)

// IdentifierRepository defines the interface for identifier persistence.
type IdentifierRepository interface {
	// InsertUnique atomically inserts record only if its ID is absent.
	// A colliding ID yields ErrIDExists.
	InsertUnique(ctx context.Context, record *domain.Identifier) error
	GetByID(ctx context.Context, id string) (*domain.Identifier, error)
	// Confirm transitions confirmed false→true. Confirming an already
	// confirmed identifier is a no-op success.
	Confirm(ctx context.Context, id string) error
	// SoftDelete transitions deleted false→true without removing the row.
	SoftDelete(ctx context.Context, id string) error
	// Checkpoint flushes buffered writes so a file copy of the store taken
	// while writes are suspended is self-consistent.
	Checkpoint(ctx context.Context) error
}

// SettingsRepository defines the interface for the settings table. The setup
// GUI writes the same table out-of-band, so callers must re-read rather than
// cache values across requests.
type SettingsRepository interface {
	Read(ctx context.Context) (*domain.Settings, error)
	Write(ctx context.Context, settings *domain.Settings) error
	// Seed inserts the default rows, keeping any existing values.
	Seed(ctx context.Context) error
}
