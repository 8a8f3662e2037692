package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"chaingang-server/internal/jwt"
	"chaingang-server/pkg/game"
	"chaingang-server/pkg/ledger"
	"chaingang-server/pkg/room"
)

type ctxKey int

const (
	ctxProfileKey ctxKey = iota
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Dependencies are the collaborators of the HTTP handlers
type Dependencies struct {
	PitBoss  *room.PitBoss
	Ledger   ledger.Ledger
	Profiles ProfileSource

	// DB is pinged by the health check when set
	DB Pinger
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version  string
	pitBoss  *room.PitBoss
	ledger   ledger.Ledger
	profiles ProfileSource
	db       Pinger

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, deps Dependencies) *Mux {
	if deps.Profiles == nil {
		deps.Profiles = ClaimsProfiles{}
	}

	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		pitBoss:  deps.PitBoss,
		ledger:   deps.Ledger,
		profiles: deps.Profiles,
		db:       deps.DB,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/variant").Handler(this.getVariant())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/player").Handler(this.getPlayer())
		r.Methods(http.MethodGet).Path("/room/ws").Handler(this.getRoomWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		identity, err := jwt.Validate(token)
		if err != nil {
			logrus.WithError(err).Debug("rejected token")
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		profile, err := m.profiles.Profile(r.Context(), identity)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxProfileKey, profile)
		w.Header().Set("ChainGang-UserID", profile.ID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func profileFromContext(ctx context.Context) game.Profile {
	return ctx.Value(ctxProfileKey).(game.Profile)
}
