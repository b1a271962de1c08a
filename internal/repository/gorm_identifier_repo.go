package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/StephanNaro/id-registry/internal/domain"
	"github.com/StephanNaro/id-registry/pkg/database"
	"github.com/StephanNaro/id-registry/pkg/log"
)

// GormIdentifierRepository implements IdentifierRepository using GORM.
type GormIdentifierRepository struct {
	db *gorm.DB
}

// NewGormIdentifierRepository creates a new GORM-based identifier repository.
func NewGormIdentifierRepository(db *gorm.DB) *GormIdentifierRepository {
	return &GormIdentifierRepository{db: db}
}

// InsertUnique inserts the record, relying on the primary key to reject
// duplicates. The constraint violation is the sole collision signal.
func (r *GormIdentifierRepository) InsertUnique(ctx context.Context, record *domain.Identifier) error {
	l := log.Ctx(ctx)

	model := domain.IdentifierToModel(record)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrIDExists
		}
		l.Error().Err(result.Error).Str(log.FieldID, record.ID).Msg("failed to insert identifier")
		return result.Error
	}

	record.CreatedAt = model.CreatedAt
	l.Debug().Str(log.FieldID, record.ID).Str(log.FieldOwner, record.Owner).Msg("identifier inserted")
	return nil
}

// GetByID retrieves an identifier by ID. Soft-deleted records are returned
// with Deleted set; history stays visible.
func (r *GormIdentifierRepository) GetByID(ctx context.Context, id string) (*domain.Identifier, error) {
	l := log.Ctx(ctx)

	var model domain.IdentifierModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrIDNotFound
		}
		l.Error().Err(result.Error).Str(log.FieldID, id).Msg("failed to get identifier")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// Confirm marks the identifier confirmed. Re-confirming is a no-op success;
// a soft-deleted identifier cannot be confirmed.
func (r *GormIdentifierRepository) Confirm(ctx context.Context, id string) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).Model(&domain.IdentifierModel{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("confirmed", true)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldID, id).Msg("failed to confirm identifier")
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from a deleted one.
		var model domain.IdentifierModel
		if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIDNotFound
			}
			return err
		}
		return ErrIDDeleted
	}
	l.Debug().Str(log.FieldID, id).Msg("identifier confirmed")
	return nil
}

// SoftDelete marks the identifier deleted; the row is never removed.
// Deleting an already-deleted identifier is a no-op success.
func (r *GormIdentifierRepository) SoftDelete(ctx context.Context, id string) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).Model(&domain.IdentifierModel{}).
		Where("id = ?", id).
		Update("deleted", true)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldID, id).Msg("failed to soft-delete identifier")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIDNotFound
	}
	l.Debug().Str(log.FieldID, id).Msg("identifier soft-deleted")
	return nil
}

// Checkpoint flushes buffered writes on the backing store.
func (r *GormIdentifierRepository) Checkpoint(ctx context.Context) error {
	return database.Checkpoint(r.db.WithContext(ctx))
}

// isUniqueViolation reports whether err is a unique/primary-key constraint
// violation on any of the supported drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint") || // sqlite
		strings.Contains(errStr, "duplicate key") || // postgres
		strings.Contains(errStr, "Duplicate entry") // mysql
}

var _ IdentifierRepository = (*GormIdentifierRepository)(nil)
