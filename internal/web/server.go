// Package web serves the grid as an HTML page and translates browser drag
// and shuffle requests into grid operations.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arcanaland/shufflegrid/internal/card"
	"github.com/arcanaland/shufflegrid/internal/grid"
	"github.com/arcanaland/shufflegrid/internal/render"
)

const (
	shufflePath = "/api/shuffle"
	gesturePath = "/api/gesture"
)

// ServerConfig configures a Server
type ServerConfig struct {
	Title      string
	RevealStep time.Duration
}

// Server owns the page's single grid. Requests are serialized so the
// grid sees one operation at a time.
type Server struct {
	cfg      ServerConfig
	log      *zap.Logger
	renderer *render.Renderer

	mu      sync.Mutex
	grid    *grid.Grid
	gesture *grid.Gesture
}

// NewServer wraps g for serving
func NewServer(cfg ServerConfig, g *grid.Grid, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		renderer: render.NewRenderer(cfg.RevealStep, nil),
		grid:     g,
		gesture:  grid.NewGesture(g),
	}
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /grid", s.handleGrid)
	mux.HandleFunc("GET /api/cards", s.handleCards)
	mux.HandleFunc("POST "+shufflePath, s.handleShuffle)
	mux.HandleFunc("POST "+gesturePath, s.handleGesture)
	mux.HandleFunc("POST /api/swap", s.handleSwap)
	return withRequestLog(s.log, withSecurityHeaders(withSameOrigin(mux)))
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.renderer.Close()
		return srv.Shutdown(shutdownCtx)
	}
}

// gestureResponse is the reply to a gesture event
type gestureResponse struct {
	State    string        `json:"state"`
	Effects  []grid.Effect `json:"effects"`
	Rerender bool          `json:"rerender"`
	HTML     string        `json:"html,omitempty"`
	Order    []string      `json:"order"`
}

// gridResponse is the reply to an operation that re-renders the grid
type gridResponse struct {
	Changed bool     `json:"changed"`
	HTML    string   `json:"html"`
	Order   []string `json:"order"`
}

type swapRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ds := s.renderer.Render(s.grid.Items())
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := render.WritePage(w, render.Page{
		Title:       s.cfg.Title,
		Cards:       ds,
		ShufflePath: shufflePath,
		GesturePath: gesturePath,
	})
	if err != nil {
		s.log.Error("page render failed", zap.Error(err))
	}
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ds := s.renderer.Render(s.grid.Items())
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteGrid(w, ds); err != nil {
		s.log.Error("grid render failed", zap.Error(err))
	}
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ds := s.renderer.Render(s.grid.Items())
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.gesture.Reset()
	s.grid.Shuffle()
	resp, err := s.gridResponseLocked(true)
	s.mu.Unlock()

	if err != nil {
		s.log.Error("grid render failed", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	s.log.Debug("shuffled", zap.Strings("order", resp.Order))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var req swapRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		http.Error(w, "invalid swap request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.gesture.Reset()
	changed := s.grid.Swap(req.From, req.To)
	resp, err := s.gridResponseLocked(changed)
	s.mu.Unlock()

	if err != nil {
		s.log.Error("grid render failed", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGesture(w http.ResponseWriter, r *http.Request) {
	var ev grid.Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&ev); err != nil {
		http.Error(w, "invalid gesture event", http.StatusBadRequest)
		return
	}
	switch ev.Type {
	case grid.DragStart, grid.DragOver, grid.DragLeave, grid.Drop, grid.DragCancel:
	default:
		http.Error(w, "unknown gesture event", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	effects, changed := s.gesture.Handle(ev)
	resp := gestureResponse{
		State:    s.gesture.State().Phase.String(),
		Effects:  effects,
		Rerender: changed,
		Order:    card.IDs(s.grid.Items()),
	}
	var err error
	if changed {
		resp.HTML, err = render.GridHTML(s.renderer.Render(s.grid.Items()))
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("grid render failed", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	if resp.Effects == nil {
		resp.Effects = []grid.Effect{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) gridResponseLocked(changed bool) (gridResponse, error) {
	items := s.grid.Items()
	html, err := render.GridHTML(s.renderer.Render(items))
	if err != nil {
		return gridResponse{}, err
	}
	return gridResponse{Changed: changed, HTML: html, Order: card.IDs(items)}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// withSameOrigin rejects state-changing requests that a third-party page
// could send: anything that is not JSON, or that names a foreign Origin.
func withSameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
			http.Error(w, "content type must be application/json", http.StatusUnsupportedMediaType)
			return
		}
		if origin := r.Header.Get("Origin"); origin != "" {
			u, err := url.Parse(origin)
			if err != nil || u.Host != r.Host {
				http.Error(w, "cross-origin request rejected", http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withRequestLog(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}
