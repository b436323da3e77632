package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/palmietopia/server/internal/session"
	"github.com/palmietopia/server/internal/ws"
)

// SetupRoutes mounts the health check and the single websocket endpoint
// everything else — lobby creation, joining, gameplay — goes through.
// There is no REST surface for lobbies: a lobby only exists once a
// socket is attached to receive its broadcasts, so creating one is a
// websocket message (CreateLobby), not a POST.
func SetupRoutes(mgr *session.Manager, logger *zap.Logger, endpointPath string) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get(endpointPath, ws.Handler(mgr, logger))
	return r
}
