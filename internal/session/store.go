// Package session persists the logged-in user's identity record on device.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"hostel-client/internal/model"
)

// ErrNoSession is returned by Load when no user is logged in.
var ErrNoSession = errors.New("no active session")

// storageKey is the fixed key the serialized user record lives under.
const storageKey = "user"

// Store defines the session lifecycle: written at login, cleared at logout,
// read by every screen.
type Store interface {
	Save(ctx context.Context, user *model.User) error
	Load(ctx context.Context) (*model.User, error)
	Clear(ctx context.Context) error
}

// record is a row of the local key-value session table.
type record struct {
	Key       string `gorm:"primaryKey;size:64"`
	Payload   string `gorm:"not null"`
	UpdatedAt time.Time
}

func (record) TableName() string { return "session_records" }

// gormStore implements Store on a local sqlite database.
type gormStore struct {
	db *gorm.DB
}

// Open initializes the session database at the given path.
func Open(path string) (Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session schema: %w", err)
	}
	return &gormStore{db: db}, nil
}

// NewGormStore wraps an existing database handle. Used by tests.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Save serializes the user record under the fixed storage key.
func (s *gormStore) Save(ctx context.Context, user *model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	rec := record{Key: storageKey, Payload: string(payload), UpdatedAt: time.Now().UTC()}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Load retrieves the logged-in user, or ErrNoSession.
func (s *gormStore) Load(ctx context.Context) (*model.User, error) {
	var rec record
	err := s.db.WithContext(ctx).First(&rec, "key = ?", storageKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var user model.User
	if err := json.Unmarshal([]byte(rec.Payload), &user); err != nil {
		// A corrupt record is indistinguishable from no session for the
		// caller; force a fresh login rather than failing every screen.
		return nil, ErrNoSession
	}
	return &user, nil
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (s *gormStore) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Delete(&record{}, "key = ?", storageKey).Error; err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
