package stores

import (
	"gorm.io/gorm"

	"genchat/models"
)

// keyPrefix namespaces identity keys so the table can coexist with other
// application state in a shared database.
const keyPrefix = "genchat_history_"

// HistoryRecord is one persisted conversation snapshot. There is exactly
// one record per identity; Save overwrites it whole.
type HistoryRecord struct {
	gorm.Model
	Key string `gorm:"uniqueIndex;not null"`
	// SnapshotJSON is the JSON marshaled ordered list of persisted
	// messages ({role, text, imageData?}; video data never appears).
	SnapshotJSON string `gorm:"type:json"`
	// MessageCount lets Load skip unmarshaling an empty snapshot.
	MessageCount int `gorm:"default:0"`
}

// HistoryStore abstracts conversation persistence. An empty identity has
// no storage key, so Save and Load are no-ops for it.
type HistoryStore interface {
	Save(identity string, msgs []models.Message) error
	Load(identity string) ([]models.Message, error)

	// Connection management
	Connect() error
	Close() error

	// Health check
	Ping() error
}

// historyKey derives the storage key for an identity. Empty identity means
// no key.
func historyKey(identity string) string {
	if identity == "" {
		return ""
	}
	return keyPrefix + identity
}

// StoreConfig holds configuration for database stores
type StoreConfig struct {
	Type       string `json:"type"`       // "sqlite", "postgres"
	Connection string `json:"connection"` // file path or DSN
}

// NewStoreConfig creates a new store configuration
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
	}
}
