package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/palmietopia/server/internal/model"
	"github.com/palmietopia/server/internal/wire"
)

func TestCreateLobbyThenJoinThenStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, zap.NewNop(), nil)
	defer func() { m.Inbox() <- ShutdownManager{} }()

	hostOut := make(chan []wire.ServerMessage, 4)
	createReply := make(chan CreateLobbyReply, 1)
	m.Inbox() <- CreateLobby{PlayerName: "Alice", MapSize: model.MapTiny, Outbox: hostOut, Reply: createReply}
	created := <-createReply
	require.NoError(t, created.Err)

	guestOut := make(chan []wire.ServerMessage, 4)
	joinReply := make(chan JoinLobbyReply, 1)
	m.Inbox() <- JoinLobby{LobbyID: created.LobbyID, PlayerName: "Bob", Outbox: guestOut, Reply: joinReply}
	joined := <-joinReply
	require.NoError(t, joined.Err)
	require.Len(t, joined.Lobby.Players, 2)

	select {
	case msgs := <-hostOut:
		require.Len(t, msgs, 1)
		require.Equal(t, wire.TypeLobbyUpdated, msgs[0].MessageType())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for host's LobbyUpdated")
	}

	startReply := make(chan StartGameReply, 1)
	m.Inbox() <- StartGame{LobbyID: created.LobbyID, PlayerID: created.PlayerID, Reply: startReply}
	started := <-startReply
	require.NoError(t, started.Err)
	require.NotNil(t, started.Game)

	rejoinReply := make(chan RejoinGameReply, 1)
	m.Inbox() <- RejoinGame{GameID: created.LobbyID, PlayerID: created.PlayerID, Reply: rejoinReply}
	rejoined := <-rejoinReply
	require.NoError(t, rejoined.Err)
	require.Same(t, started.Game, rejoined.Game)
}

func TestStartGameRejectsNonHost(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, zap.NewNop(), nil)
	defer func() { m.Inbox() <- ShutdownManager{} }()

	hostOut := make(chan []wire.ServerMessage, 4)
	createReply := make(chan CreateLobbyReply, 1)
	m.Inbox() <- CreateLobby{PlayerName: "Alice", MapSize: model.MapTiny, Outbox: hostOut, Reply: createReply}
	created := <-createReply

	guestOut := make(chan []wire.ServerMessage, 4)
	joinReply := make(chan JoinLobbyReply, 1)
	m.Inbox() <- JoinLobby{LobbyID: created.LobbyID, PlayerName: "Bob", Outbox: guestOut, Reply: joinReply}
	joined := <-joinReply

	startReply := make(chan StartGameReply, 1)
	m.Inbox() <- StartGame{LobbyID: created.LobbyID, PlayerID: joined.PlayerID, Reply: startReply}
	started := <-startReply
	require.Error(t, started.Err)
}

func TestLeaveEmptyLobbyIsRemoved(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, zap.NewNop(), nil)
	defer func() { m.Inbox() <- ShutdownManager{} }()

	hostOut := make(chan []wire.ServerMessage, 4)
	createReply := make(chan CreateLobbyReply, 1)
	m.Inbox() <- CreateLobby{PlayerName: "Alice", MapSize: model.MapTiny, Outbox: hostOut, Reply: createReply}
	created := <-createReply

	m.Inbox() <- LeaveLobby{LobbyID: created.LobbyID, PlayerID: created.PlayerID}

	viewReply := make(chan *wire.LobbyView, 1)
	m.Inbox() <- GetLobbyView{LobbyID: created.LobbyID, Reply: viewReply}
	require.Nil(t, <-viewReply)
}
