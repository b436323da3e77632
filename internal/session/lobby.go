package session

import (
	"github.com/palmietopia/server/internal/model"
)

// LobbyStatus is the pre-game lifecycle phase of a Lobby.
type LobbyStatus string

const (
	LobbyWaiting  LobbyStatus = "Waiting"
	LobbyStarting LobbyStatus = "Starting"
)

// maxPlayers is the hard cap on a lobby's roster regardless of map size.
const maxPlayers = 5

// Lobby is the pre-game container: a roster, a host, a chosen map size,
// and a status. It is plain data — the session manager owns the
// registry and serializes every mutation.
type Lobby struct {
	ID         string
	HostID     string
	Players    []model.Player
	MapSize    model.MapSize
	MaxPlayers int
	Status     LobbyStatus
}

// NewLobby creates a lobby already containing its host.
func NewLobby(id, hostID, hostName string, size model.MapSize) *Lobby {
	return &Lobby{
		ID:         id,
		HostID:     hostID,
		Players:    []model.Player{{ID: hostID, Name: hostName, Color: model.ColorForIndex(0)}},
		MapSize:    size,
		MaxPlayers: maxPlayers,
		Status:     LobbyWaiting,
	}
}

// CanJoin reports whether another player may join this lobby.
func (l *Lobby) CanJoin() bool {
	return l.Status == LobbyWaiting && len(l.Players) < l.MaxPlayers
}

// StartError reports why hostID may not start the game now, or nil if
// starting is allowed.
func (l *Lobby) StartError(hostID string) error {
	if l.Status != LobbyWaiting || l.HostID != hostID {
		return ErrNotHost
	}
	if len(l.Players) < 2 {
		return ErrNotEnoughPlayers
	}
	return nil
}

// Join adds a new player at the next join index, assigning the next
// color in the palette.
func (l *Lobby) Join(playerID, name string) (model.Player, error) {
	if !l.CanJoin() {
		return model.Player{}, ErrLobbyFull
	}
	p := model.Player{ID: playerID, Name: name, Color: model.ColorForIndex(len(l.Players))}
	l.Players = append(l.Players, p)
	return p, nil
}

// Leave removes a player. It reports whether the lobby is now empty
// (the caller should destroy it) and, when it is not, the current host
// id, which passes to the earliest remaining joiner if the host left.
func (l *Lobby) Leave(playerID string) (newHostID string, empty bool) {
	for i, p := range l.Players {
		if p.ID == playerID {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			break
		}
	}
	if len(l.Players) == 0 {
		return "", true
	}
	if l.HostID == playerID {
		l.HostID = l.Players[0].ID
	}
	return l.HostID, false
}
