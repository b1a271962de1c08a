package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/StephanNaro/id-registry/internal/domain"
	"github.com/StephanNaro/id-registry/pkg/database"
)

// newTestDB opens a throwaway sqlite store with the registry schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: filepath.Join(t.TempDir(), "registry.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, &domain.IdentifierModel{}, &domain.SettingModel{}))
	return db
}
