package app

import (
	"log/slog"
	"sync"

	"github.com/feastly/opsboard/internal/board/ports"
	"github.com/feastly/opsboard/internal/session"
)

// Registry hands out one Board per signed-in session, creating boards lazily
// with the shared injected dependencies.
type Registry struct {
	sessions session.Store
	orders   ports.OrderService
	events   ports.EventBus
	logger   *slog.Logger

	mu     sync.Mutex
	boards map[string]*Board
}

// NewRegistry wires the dependencies every board shares.
func NewRegistry(sessions session.Store, orders ports.OrderService, events ports.EventBus, logger *slog.Logger) *Registry {
	return &Registry{
		sessions: sessions,
		orders:   orders,
		events:   events,
		logger:   logger,
		boards:   make(map[string]*Board),
	}
}

// Board returns the board for a session, creating it on first use.
func (r *Registry) Board(sessionID string) *Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	board, ok := r.boards[sessionID]
	if !ok {
		board = NewBoard(sessionID, r.sessions, r.orders, r.events, r.logger)
		r.boards[sessionID] = board
	}
	return board
}

// Drop forgets a session's board. Called on logout.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.boards, sessionID)
}
