package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/adventure-engine/internal/storage"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// GamesHandler serves the available game definitions.
// Routes:
// GET /v1/games        - List game names
// GET /v1/games/{name} - Describe one game
type GamesHandler struct {
	logger  *slog.Logger
	storage storage.Storage
}

func NewGamesHandler(logger *slog.Logger, storage storage.Storage) *GamesHandler {
	return &GamesHandler{
		logger:  logger,
		storage: storage,
	}
}

// GameSummary is the wire description of a loaded game.
type GameSummary struct {
	Name      string `json:"name"`
	StartRoom int    `json:"start_room"`
	Rooms     int    `json:"rooms,omitempty"`
	Objects   int    `json:"objects,omitempty"`
}

func (h *GamesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/games"), "/")
	if name == "" {
		h.handleList(w, r)
		return
	}
	h.handleGet(w, r, name)
}

func (h *GamesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := h.storage.ListGames(r.Context())
	if err != nil {
		h.logger.Error("Failed to list games", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list games")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, names)
}

func (h *GamesHandler) handleGet(w http.ResponseWriter, r *http.Request, name string) {
	world, err := h.storage.GetWorld(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrGameNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "Game not found")
			return
		}
		h.logger.Error("Failed to load game", "game", name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, GameSummary{
		Name:      world.Name,
		StartRoom: world.StartRoom,
		Rooms:     world.RoomCount(),
		Objects:   len(world.Objects()),
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}
