package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	mb "github.com/saeidalz13/seabattle-companion/models/battleship"
	mc "github.com/saeidalz13/seabattle-companion/models/connection"
)

type RespHealth struct {
	Status   string `json:"status"`
	Games    int    `json:"games"`
	Sessions int    `json:"sessions"`
}

func NewRouter(rp RequestProcessor) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/battleship", rp).Methods(http.MethodGet)
	r.HandleFunc("/health", healthHandler(rp.gameManager, rp.sessionManager)).Methods(http.MethodGet)
	return r
}

func healthHandler(gm mb.GameManager, sm mc.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := RespHealth{
			Status:   "ok",
			Games:    gm.CountGames(),
			Sessions: sm.CountSessions(),
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Println("failed to write health response:", err)
		}
	}
}
