package domain

import (
	"time"
)

// Identifier represents one minted identifier and its lifecycle state.
type Identifier struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	TableName string    `json:"table_name,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Confirmed bool      `json:"confirmed"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateRequest represents a generate request.
type GenerateRequest struct {
	Owner  string `json:"owner" binding:"required"`
	Table  string `json:"table"`
	UserID string `json:"user_id"`
}

// AdminRequest carries the admin secret for suspend/resume.
type AdminRequest struct {
	Secret string `json:"secret"`
}

// UpdateSettingsRequest represents an admin settings update.
// AdminSecret is optional; when nil the stored secret is kept.
type UpdateSettingsRequest struct {
	Secret      string  `json:"secret"`
	IDLength    int     `json:"id_length" binding:"required"`
	Charset     string  `json:"charset" binding:"required"`
	AdminSecret *string `json:"admin_secret"`
}

// IdentifierResponse represents an identifier in API responses.
type IdentifierResponse struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	TableName string    `json:"table_name,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Confirmed bool      `json:"confirmed"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// PreviewResponse carries a candidate identifier that was not persisted.
type PreviewResponse struct {
	PreviewID string `json:"preview_id"`
}

// HealthResponse reports the registry status.
type HealthResponse struct {
	Status      string     `json:"status"`
	SuspendedAt *time.Time `json:"suspended_at,omitempty"`
}

// ToResponse converts an Identifier to IdentifierResponse.
func (i *Identifier) ToResponse() IdentifierResponse {
	return IdentifierResponse{
		ID:        i.ID,
		Owner:     i.Owner,
		TableName: i.TableName,
		UserID:    i.UserID,
		Confirmed: i.Confirmed,
		Deleted:   i.Deleted,
		CreatedAt: i.CreatedAt,
	}
}
