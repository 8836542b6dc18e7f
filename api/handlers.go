// Package api is the bot's small companion HTTP surface: deck listings
// and downloads in the deck file format, per-user game history, and the
// spectator websocket endpoint.
package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"cardczar-bot/auth"
	"cardczar-bot/card"
	"cardczar-bot/config"
	"cardczar-bot/live"
	"cardczar-bot/storage"
)

const bearerPrefix = "Bearer "

// Handler holds dependencies for the API handlers.
type Handler struct {
	Config  *config.Config
	Library *card.Library
	Store   *storage.Store
	Hub     *live.Hub
}

// NewHandler creates an API handler.
func NewHandler(cfg *config.Config, library *card.Library, store *storage.Store, hub *live.Hub) *Handler {
	return &Handler{Config: cfg, Library: library, Store: store, Hub: hub}
}

// Register mounts all routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/decks", h.Decks)
	mux.HandleFunc("/decks/", h.DeckFile)
	mux.HandleFunc("/history", h.History)
	if h.Hub != nil {
		mux.HandleFunc("/live", h.Hub.ServeWS)
	}
}

// deckSummary is one row of the deck listing.
type deckSummary struct {
	Name      string `json:"name"`
	Responses int    `json:"responses"`
	Prompts   int    `json:"prompts"`
}

// Decks lists every deck name with card counts. Restricted decks are
// listed but not downloadable without authoring access in chat.
func (h *Handler) Decks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	list := []deckSummary{}
	for _, d := range h.Library.All() {
		responses, prompts := d.Counts()
		list = append(list, deckSummary{Name: d.Name, Responses: responses, Prompts: prompts})
	}
	writeJSON(w, list)
}

// DeckFile serves /decks/{name}/responses or /decks/{name}/prompts as a
// plain-text deck file.
func (h *Handler) DeckFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/decks/"), "/"), "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	name, kind := parts[0], parts[1]
	d, err := h.Library.Get(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	switch kind {
	case "responses":
		err = card.WriteResponses(&buf, d.Responses())
	case "prompts":
		err = card.WritePrompts(&buf, d.Prompts())
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to build deck file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(buf.Bytes())
}

// History returns the game history for the authenticated user.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := h.extractUserID(r)
	if userID == "" {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}
	list, err := h.Store.ListByUserID(r.Context(), userID)
	if err != nil {
		slog.Error("listing history", "tag", "api", "err", err)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// extractUserID validates the Authorization header; empty on failure.
func (h *Handler) extractUserID(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	claims, err := auth.ValidateToken(h.Config.AuthBaseURL, strings.TrimSpace(header[len(bearerPrefix):]))
	if err != nil {
		return ""
	}
	return auth.UserIDFromClaims(claims)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "tag", "api", "err", err)
	}
}
