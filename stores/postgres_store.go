package stores

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"genchat/models"
)

// PostgresStore implements HistoryStore for PostgreSQL databases
type PostgresStore struct {
	db  *gorm.DB
	dsn string
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(config *StoreConfig) (*PostgresStore, error) {
	if config.Type != "postgres" {
		return nil, fmt.Errorf("invalid store type for PostgreSQL store: %s", config.Type)
	}

	store := &PostgresStore{
		dsn: config.Connection,
	}

	if err := store.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	return store, nil
}

// NewPostgresStoreSimple creates a new PostgreSQL store with just a DSN
func NewPostgresStoreSimple(dsn string) (*PostgresStore, error) {
	return NewPostgresStore(NewStoreConfig("postgres", dsn))
}

// Connect establishes a connection to the PostgreSQL database
func (s *PostgresStore) Connect() error {
	db, err := gorm.Open(postgres.Open(s.dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	s.db = db

	// Auto-migrate the schema
	if err := s.db.AutoMigrate(&HistoryRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (s *PostgresStore) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

// Save overwrites the identity's snapshot with the full conversation.
// Save for an empty identity is a no-op.
func (s *PostgresStore) Save(identity string, msgs []models.Message) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	key := historyKey(identity)
	if key == "" {
		return nil
	}

	snapshotJSON, err := marshalSnapshot(msgs)
	if err != nil {
		return err
	}

	// Unscoped: a soft-deleted row would keep the key under the unique
	// index and make the re-insert collide.
	tx := s.db.Begin()
	if err := tx.Unscoped().Where("key = ?", key).Delete(&HistoryRecord{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear history record: %w", err)
	}

	record := HistoryRecord{
		Key:          key,
		SnapshotJSON: snapshotJSON,
		MessageCount: len(msgs),
	}
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create history record: %w", err)
	}

	return tx.Commit().Error
}

// Load returns the identity's snapshot in stored order, or nil when the
// identity is empty or no snapshot exists.
func (s *PostgresStore) Load(identity string) ([]models.Message, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	key := historyKey(identity)
	if key == "" {
		return nil, nil
	}

	var record HistoryRecord
	err := s.db.Where("key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history record: %w", err)
	}
	if record.MessageCount == 0 {
		return nil, nil
	}

	return unmarshalSnapshot(record.SnapshotJSON)
}
