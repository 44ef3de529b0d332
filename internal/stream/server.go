package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/planets/internal/dynamo"
	"github.com/san-kum/planets/internal/physics"
	"github.com/san-kum/planets/internal/sim"
)

// Server drives one population at a fixed frame rate and streams every
// tick to WebSocket clients. The population is only touched while mu is
// held, so HTTP handlers never observe a half-applied tick.
type Server struct {
	mu      sync.Mutex
	sim     *sim.Simulator
	pop     dynamo.Population
	initial dynamo.Population
	hub     *Hub
	fps     int
	logger  *slog.Logger

	paused atomic.Bool
	reset  atomic.Bool
}

func NewServer(g *physics.Gravity, pop dynamo.Population, fps int, logger *slog.Logger) *Server {
	if fps <= 0 {
		fps = 60
	}
	s := &Server{
		sim:     sim.New(g),
		pop:     pop,
		initial: pop.Clone(),
		fps:     fps,
		logger:  logger,
	}
	s.sim.SetValidate(true)
	s.hub = NewHub(logger, s.initFrame, s.handleCommand)
	return s
}

func (s *Server) initFrame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewFrame(FrameInit, s.sim.TickCount(), s.pop)
}

func (s *Server) handleCommand(cmd Command) {
	s.logger.Debug("command", "command", cmd.Command)
	switch cmd.Command {
	case CommandPause:
		s.paused.Store(true)
	case CommandResume:
		s.paused.Store(false)
	case CommandReset:
		s.reset.Store(true)
	default:
		s.logger.Warn("unknown command", "command", cmd.Command)
	}
}

func (s *Server) Hub() *Hub { return s.hub }

// Advance applies one tick (or a pending reset) and broadcasts the result.
func (s *Server) Advance() error {
	s.mu.Lock()
	if s.reset.Swap(false) {
		copy(s.pop, s.initial)
		s.sim.Reset()
		frame := NewFrame(FrameInit, 0, s.pop)
		s.mu.Unlock()
		return s.hub.Broadcast(frame)
	}
	if s.paused.Load() {
		s.mu.Unlock()
		return nil
	}
	if err := s.sim.Tick(s.pop); err != nil {
		s.mu.Unlock()
		return err
	}
	frame := NewFrame(FrameTick, s.sim.TickCount(), s.pop)
	s.mu.Unlock()

	return s.hub.Broadcast(frame)
}

// Run advances the simulation once per frame until ctx is done or the
// state becomes invalid.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Advance(); err != nil {
				return err
			}
		}
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s.hub)
	mux.HandleFunc("/state", s.serveState)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	return mux
}

func (s *Server) serveState(w http.ResponseWriter, r *http.Request) {
	frame := s.initFrame()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(frame); err != nil {
		s.logger.Error("encode state", "err", err)
	}
}

// ListenAndServe serves on addr and runs the simulation loop until ctx is
// canceled, then shuts the HTTP server down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 2)
	go func() {
		s.logger.Info("listening", "addr", addr, "bodies", len(s.pop), "fps", s.fps)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	go func() {
		errc <- s.Run(ctx)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-errc:
	}
	cancel()

	s.hub.Close()
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if serr := srv.Shutdown(shutdownCtx); serr != nil && err == nil {
		err = serr
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
