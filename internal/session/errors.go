package session

import "errors"

// Sentinel errors for the lookup and lobby-rule failures the manager can
// report back to a reply channel. Callers distinguish them with
// errors.Is rather than matching on message text.
var (
	ErrNoSuchLobby      = errors.New("no such lobby")
	ErrNoSuchGame       = errors.New("no such game")
	ErrNoSuchPlayer     = errors.New("no such player")
	ErrInvalidMapSize   = errors.New("invalid map size")
	ErrLobbyFull        = errors.New("lobby full")
	ErrNotHost          = errors.New("not the host")
	ErrNotEnoughPlayers = errors.New("not enough players")
)
