package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/kmatveev/brickpop-server/internal/board"
)

// ReplayStepDTO is one frame of a solution replay: the move just applied
// and the board it produced. Step counts from 1; the 0th frame carries the
// initial board and no move.
type ReplayStepDTO struct {
	Step  int          `json:"step"`
	Total int          `json:"total"`
	Move  *board.Coord `json:"move,omitempty"`
	Rows  []string     `json:"rows"`
	Done  bool         `json:"done"`
}

// Replay streams a stored solution one move per client message, so a
// replay collaborator (or a curious human with websocat) can pace the taps
// itself. Any text message advances the replay; the connection closes
// after the last frame.
func (h Puzzle) Replay(w http.ResponseWriter, r *http.Request) {
	puzzle := h.fetch(w, r)
	if puzzle == nil {
		return
	}
	if !puzzle.Solved || puzzle.Solution == nil {
		w.WriteHeader(http.StatusConflict)
		return
	}

	dto, err := NewPuzzleDTO(puzzle)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to build puzzle dto", "error", err)
		return
	}

	b, err := puzzle.DecodeBoard()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid puzzle.board", "error", err)
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("upgrade failed", "error", err)
		return
	}
	defer c.Close()

	total := len(dto.Solution)
	if err := c.WriteJSON(ReplayStepDTO{
		Step: 0, Total: total, Rows: b.Rows(), Done: total == 0,
	}); err != nil {
		h.logger.Error("write failed", "error", err)
		return
	}

	for i, move := range dto.Solution {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.logger.Warn("read failed", "error", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}
		h.logger.Debug("replay advance", slog.String("message", strings.TrimSpace(string(message))))

		next, err := b.Apply(move)
		if err != nil {
			// A stored solution replaying illegally is a defect, not bad input.
			h.logger.Error(
				"stored solution does not replay",
				slog.Int64("puzzleId", puzzle.PuzzleId),
				slog.Int("step", i+1),
				slog.Any("error", err),
			)
			return
		}
		b = next

		if err := c.WriteJSON(ReplayStepDTO{
			Step:  i + 1,
			Total: total,
			Move:  &move,
			Rows:  b.Rows(),
			Done:  i+1 == total,
		}); err != nil {
			h.logger.Error("write failed", "error", err)
			return
		}
	}
}
