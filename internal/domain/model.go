package domain

import (
	"time"
)

// IdentifierModel is the GORM model for the ids table. The primary key on
// ID is what enforces uniqueness; a violating insert is the collision signal.
type IdentifierModel struct {
	ID        string    `gorm:"type:varchar(32);primaryKey"`
	Owner     string    `gorm:"type:varchar(100);index;not null"`
	Table     string    `gorm:"type:varchar(100);column:table_name"`
	UserID    string    `gorm:"type:varchar(100);column:user_id"`
	Confirmed bool      `gorm:"not null;default:false"`
	Deleted   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for IdentifierModel.
func (IdentifierModel) TableName() string {
	return "ids"
}

// ToDomain converts IdentifierModel to a domain Identifier.
func (m *IdentifierModel) ToDomain() *Identifier {
	return &Identifier{
		ID:        m.ID,
		Owner:     m.Owner,
		TableName: m.Table,
		UserID:    m.UserID,
		Confirmed: m.Confirmed,
		Deleted:   m.Deleted,
		CreatedAt: m.CreatedAt,
	}
}

// IdentifierToModel converts a domain Identifier to IdentifierModel.
func IdentifierToModel(i *Identifier) *IdentifierModel {
	return &IdentifierModel{
		ID:        i.ID,
		Owner:     i.Owner,
		Table:     i.TableName,
		UserID:    i.UserID,
		Confirmed: i.Confirmed,
		Deleted:   i.Deleted,
		CreatedAt: i.CreatedAt,
	}
}

// SettingModel is the GORM model for the settings key/value table.
type SettingModel struct {
	Key   string `gorm:"type:varchar(50);primaryKey"`
	Value string `gorm:"type:text"`
}

// TableName specifies the table name for SettingModel.
func (SettingModel) TableName() string {
	return "settings"
}
