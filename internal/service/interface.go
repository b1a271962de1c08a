package service

import (
	"context"
	"errors"

	"github.com/StephanNaro/id-registry/internal/domain"
)

var (
	ErrInvalidOwner = errors.New("owner must be a non-empty string of letters, digits or underscores")
	// ErrExhausted means no free identifier was found within the retry bound.
	ErrExhausted = errors.New("could not generate a unique identifier")
	// ErrSuspended means writes are rejected while the registry is gated for backup.
	ErrSuspended    = errors.New("registry is suspended")
	ErrUnauthorized = errors.New("invalid admin secret")
	ErrIDNotFound   = errors.New("identifier not found")
	ErrIDDeleted    = errors.New("identifier is deleted")
	// ErrConfiguration wraps invalid stored settings (length, charset). Fatal
	// for the request, not for the process.
	ErrConfiguration   = errors.New("invalid registry configuration")
	ErrInvalidSettings = errors.New("invalid settings update")
)

// RegistryService defines the registry business logic.
type RegistryService interface {
	Generate(ctx context.Context, req *domain.GenerateRequest) (*domain.IdentifierResponse, error)
	Preview(ctx context.Context) (string, error)
	Confirm(ctx context.Context, id string) error
	Lookup(ctx context.Context, id string) (*domain.IdentifierResponse, error)
	Delete(ctx context.Context, id string) error
	Suspend(ctx context.Context, secret string) error
	Resume(ctx context.Context, secret string) error
	UpdateSettings(ctx context.Context, secret string, req *domain.UpdateSettingsRequest) error
	Health(ctx context.Context) *domain.HealthResponse
}
