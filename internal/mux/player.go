package mux

import (
	"errors"
	"net/http"

	"chaingang-server/pkg/game"
	"chaingang-server/pkg/ledger"
)

type playerResponse struct {
	game.Profile
	Balance int `json:"balance"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
}

type variantResponse struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

func (m *Mux) getPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := profileFromContext(r.Context())
		resp := playerResponse{Profile: profile}

		balance, err := m.ledger.GetBalance(r.Context(), profile.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}
		resp.Balance = balance

		if getter, ok := m.ledger.(ledger.AccountGetter); ok {
			acct, err := getter.GetAccount(r.Context(), profile.ID)
			if err != nil && !errors.Is(err, ledger.ErrAccountNotFound) {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			if acct != nil {
				resp.Wins = acct.Wins
				resp.Losses = acct.Losses
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func (m *Mux) getVariant() http.HandlerFunc {
	variants := make([]variantResponse, 0, 3)
	for _, v := range game.Variants() {
		variants = append(variants, variantResponse{Tag: v.Tag(), Name: v.Name()})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, variants)
	}
}
