// Package persistence provides an optional snapshot sink for GameState,
// written on every TurnChanged and replayable on startup. Nothing in
// the session layer requires it; a nil Store simply skips persistence.
package persistence

import (
	"context"

	"github.com/palmietopia/server/internal/model"
)

// Store receives GameState snapshots keyed by game id and a
// monotonically increasing version, and can replay the latest one back.
type Store interface {
	Save(ctx context.Context, gameID string, version int, state model.GameState) error
	Load(ctx context.Context, gameID string) (model.GameState, int, error)
}
