package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/internal/queue"
	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/pkg/interp"
	"github.com/jwebster45206/adventure-engine/pkg/session"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// SessionHandler owns the session lifecycle and the command endpoint.
// Routes:
// POST /v1/sessions                - Create a session for a game
// GET /v1/sessions/{id}            - Read session state
// DELETE /v1/sessions/{id}         - End a session
// POST /v1/sessions/{id}/command   - Interpret one command
type SessionHandler struct {
	logger  *slog.Logger
	storage storage.Storage

	// forcedQueue schedules forced-move continuations; nil means the
	// caller drives the chain itself.
	forcedQueue *queue.ForcedQueue
	forcedDelay time.Duration
}

func NewSessionHandler(logger *slog.Logger, storage storage.Storage, fq *queue.ForcedQueue, forcedDelay time.Duration) *SessionHandler {
	return &SessionHandler{
		logger:      logger,
		storage:     storage,
		forcedQueue: fq,
		forcedDelay: forcedDelay,
	}
}

type CreateSessionRequest struct {
	Game string `json:"game"`
}

type CommandRequest struct {
	Input string `json:"input"`
}

// SessionResponse is the wire form of a session for presentation
// layers: the result of the last command plus the current view.
type SessionResponse struct {
	ID     uuid.UUID      `json:"id"`
	Game   string         `json:"game"`
	Result *interp.Result `json:"result,omitempty"`
	View   interp.View    `json:"view"`
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")

	if rest == "" {
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Use POST to create a session.")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", parts[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	if len(parts) == 2 {
		if parts[1] != "command" || r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusNotFound, "Unknown session operation")
			return
		}
		h.handleCommand(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleRead(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Game == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Request body must include a game name")
		return
	}

	world, err := h.storage.GetWorld(r.Context(), req.Game)
	if err != nil {
		if errors.Is(err, storage.ErrGameNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "Game not found")
			return
		}
		h.logger.Error("Failed to load game", "game", req.Game, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game")
		return
	}

	s := session.New(world)

	// A start room can itself demand a forced move; resolve the state
	// machine position before the first player command.
	result := startResult(s)

	if err := h.storage.SaveSession(r.Context(), s); err != nil {
		h.logger.Error("Failed to save session", "id", s.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}
	h.scheduleForced(r, s, result)

	h.logger.Info("Created session", "id", s.ID, "game", world.Name)
	writeJSON(w, h.logger, http.StatusCreated, SessionResponse{
		ID:     s.ID,
		Game:   world.Name,
		Result: result,
		View:   interp.Describe(s, true),
	})
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	s, err := h.loadSession(w, r, id)
	if s == nil || err != nil {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, SessionResponse{
		ID:   s.ID,
		Game: s.World.Name,
		View: interp.Describe(s, true),
	})
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteSession(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	if h.forcedQueue != nil {
		// A deleted session must not leave a pending continuation behind.
		if err := h.forcedQueue.Cancel(r.Context(), id); err != nil {
			h.logger.Error("Failed to cancel forced continuation", "id", id, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleCommand(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Request body must include an input line")
		return
	}

	s, err := h.loadSession(w, r, id)
	if s == nil || err != nil {
		return
	}

	result := interp.Interpret(s, req.Input)

	if err := h.storage.SaveSession(r.Context(), s); err != nil {
		h.logger.Error("Failed to save session", "id", s.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.scheduleForced(r, s, &result)

	h.logger.Debug("Interpreted command",
		"id", s.ID,
		"result", result.Kind,
		"moved", result.Moved)

	writeJSON(w, h.logger, http.StatusOK, SessionResponse{
		ID:     s.ID,
		Game:   s.World.Name,
		Result: &result,
		View:   interp.Describe(s, result.FirstVisit || !result.Moved),
	})
}

// loadSession fetches a session and writes the error response itself on
// failure. A nil session with nil error means "already handled".
func (h *SessionHandler) loadSession(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*session.Session, error) {
	s, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrCorruptSnapshot) {
			h.logger.Error("Corrupt session snapshot", "id", id, "error", err)
			writeError(w, h.logger, http.StatusConflict, "Saved session is corrupt; start a new session")
			return nil, err
		}
		h.logger.Error("Failed to load session", "id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return nil, err
	}
	if s == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return nil, nil
	}
	return s, nil
}

// scheduleForced hands a Forced result to the continuation queue, when
// one is configured.
func (h *SessionHandler) scheduleForced(r *http.Request, s *session.Session, result *interp.Result) {
	if h.forcedQueue == nil || result == nil || result.Kind != interp.Forced {
		return
	}
	if err := h.forcedQueue.Schedule(r.Context(), s.ID, time.Now().Add(h.forcedDelay)); err != nil {
		h.logger.Error("Failed to schedule forced continuation", "id", s.ID, "error", err)
	}
}

// startResult resolves the initial state machine position of a new
// session, mirroring what entering the start room would classify as.
func startResult(s *session.Session) *interp.Result {
	fp, forced := s.CurrentRoom().ForcedPassage()
	switch {
	case forced && fp.To == world.TerminalRoom:
		s.SetPhase(session.PhaseGameOver)
		return &interp.Result{Kind: interp.GameOver, Message: s.CurrentRoom().Description}
	case forced:
		s.SetPhase(session.PhaseAwaitingForced)
		return &interp.Result{Kind: interp.Forced, FirstVisit: true, Message: interp.DescribeRoom(s, true)}
	default:
		return &interp.Result{Kind: interp.ShowedRoom, FirstVisit: true, Message: interp.DescribeRoom(s, true)}
	}
}
