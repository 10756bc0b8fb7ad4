package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

type scoreBody struct {
	Score int `json:"score"`
}

type httpHandler struct {
	scores *Scores
}

// NewHTTPHandler serves the high score as JSON:
//
//	GET  /api/highscore -> {"score": n}
//	POST /api/highscore <- {"score": n}, replies with the resulting high score
func NewHTTPHandler(s *Scores) http.Handler {
	h := &httpHandler{scores: s}
	r := mux.NewRouter()
	r.HandleFunc("/api/highscore", h.get).Methods(http.MethodGet)
	r.HandleFunc("/api/highscore", h.post).Methods(http.MethodPost)
	return r
}

func (h *httpHandler) get(w http.ResponseWriter, r *http.Request) {
	v, err := h.scores.best(r.Context())
	if err != nil {
		h.scores.logger.Error("unable to read high score", slog.String("error", err.Error()))
		http.Error(w, "unable to read high score", http.StatusInternalServerError)
		return
	}
	h.reply(w, v)
}

func (h *httpHandler) post(w http.ResponseWriter, r *http.Request) {
	var body scoreBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	v, err := h.scores.submit(r.Context(), body.Score)
	switch {
	case errors.Is(err, errNegativeScore):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.scores.logger.Error("unable to submit score", slog.String("error", err.Error()))
		http.Error(w, "unable to submit score", http.StatusInternalServerError)
		return
	}
	h.reply(w, v)
}

func (h *httpHandler) reply(w http.ResponseWriter, v int) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(scoreBody{Score: v}); err != nil {
		h.scores.logger.Error("unable to encode reply", slog.String("error", err.Error()))
	}
}
