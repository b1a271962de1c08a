package domain

// Settings keys in the settings table. The setup GUI writes the same rows
// out-of-band, so these names are part of the on-disk contract.
const (
	SettingIDLength    = "id_length"
	SettingCharset     = "charset"
	SettingAdminSecret = "admin_secret"
)

// Defaults seeded into an empty settings table.
const (
	DefaultIDLength    = 12
	DefaultCharset     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultAdminSecret = "your-secret-here"
)

// Bounds for the configured identifier length.
const (
	MinIDLength = 8
	MaxIDLength = 32
)

// Settings holds the registry configuration stored in the settings table.
type Settings struct {
	IDLength    int    `json:"id_length"`
	Charset     string `json:"charset"`
	AdminSecret string `json:"-"`
}
