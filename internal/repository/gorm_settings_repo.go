package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/StephanNaro/id-registry/internal/domain"
	"github.com/StephanNaro/id-registry/pkg/log"
)

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM-based settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Read loads the settings rows. Every call hits the store: the setup GUI is
// another writer of this table, so values must never be cached here.
func (r *GormSettingsRepository) Read(ctx context.Context) (*domain.Settings, error) {
	lengthStr, err := r.value(ctx, domain.SettingIDLength)
	if err != nil {
		return nil, err
	}
	length, err := strconv.Atoi(lengthStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", domain.SettingIDLength, lengthStr, err)
	}

	charset, err := r.value(ctx, domain.SettingCharset)
	if err != nil {
		return nil, err
	}

	secret, err := r.value(ctx, domain.SettingAdminSecret)
	if err != nil {
		return nil, err
	}

	return &domain.Settings{
		IDLength:    length,
		Charset:     charset,
		AdminSecret: secret,
	}, nil
}

// Write upserts all settings rows.
func (r *GormSettingsRepository) Write(ctx context.Context, settings *domain.Settings) error {
	l := log.Ctx(ctx)

	rows := []domain.SettingModel{
		{Key: domain.SettingIDLength, Value: strconv.Itoa(settings.IDLength)},
		{Key: domain.SettingCharset, Value: settings.Charset},
		{Key: domain.SettingAdminSecret, Value: settings.AdminSecret},
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rows)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to write settings")
		return result.Error
	}
	l.Debug().Int("id_length", settings.IDLength).Msg("settings written")
	return nil
}

// Seed inserts the default settings rows, keeping any values already present.
func (r *GormSettingsRepository) Seed(ctx context.Context) error {
	rows := []domain.SettingModel{
		{Key: domain.SettingIDLength, Value: strconv.Itoa(domain.DefaultIDLength)},
		{Key: domain.SettingCharset, Value: domain.DefaultCharset},
		{Key: domain.SettingAdminSecret, Value: domain.DefaultAdminSecret},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&rows).Error
}

func (r *GormSettingsRepository) value(ctx context.Context, key string) (string, error) {
	var model domain.SettingModel
	result := r.db.WithContext(ctx).First(&model, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: %s", ErrSettingMissing, key)
		}
		return "", result.Error
	}
	return model.Value, nil
}

var _ SettingsRepository = (*GormSettingsRepository)(nil)
