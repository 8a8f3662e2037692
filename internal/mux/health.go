package mux

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	DB      string `json:"db,omitempty"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := healthResponse{
			Status:  "OK",
			Version: m.version,
		}

		if m.db == nil {
			writeJSON(w, http.StatusOK, payload)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := m.db.PingContext(ctx); err != nil {
			payload.Status = "ERROR"
			payload.DB = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, payload)
			return
		}

		payload.DB = "OK"
		writeJSON(w, http.StatusOK, payload)
	}
}
