package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/palmietopia/server/internal/model"
)

// snapshotRow is the GORM model backing the snapshot table. The state
// itself is stored as a JSON blob rather than normalized columns —
// there is exactly one reader of it (the startup replay path) and the
// schema already changes whenever GameState does.
type snapshotRow struct {
	GameID  string `gorm:"primaryKey"`
	Version int
	State   []byte
}

func (snapshotRow) TableName() string { return "game_snapshots" }

// PostgresStore is the GORM + Postgres backed Store.
type PostgresStore struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn and ensures the snapshot table exists.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

// Save upserts the latest snapshot for gameID.
func (s *PostgresStore) Save(ctx context.Context, gameID string, version int, state model.GameState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return err
	}
	row := snapshotRow{GameID: gameID, Version: version, State: blob}
	return s.db.WithContext(ctx).Save(&row).Error
}

// Load returns the most recently saved snapshot for gameID.
func (s *PostgresStore) Load(ctx context.Context, gameID string) (model.GameState, int, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).First(&row, "game_id = ?", gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.GameState{}, 0, nil
	}
	if err != nil {
		return model.GameState{}, 0, err
	}
	var state model.GameState
	if err := json.Unmarshal(row.State, &state); err != nil {
		return model.GameState{}, 0, err
	}
	return state, row.Version, nil
}
