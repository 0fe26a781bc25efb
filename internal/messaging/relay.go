package messaging

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/autofill"
	"github.com/spigell/job-autofill/internal/overlay"
)

// DefaultListen is the relay address used when none is configured.
const DefaultListen = "127.0.0.1:17345"

const maxRequestBody = 4 << 10

// Relay is the local HTTP surface of a serving session.
type Relay struct {
	starter Starter
	hub     *Hub
	token   string
	metrics http.Handler
	logger  *zap.Logger
}

// NewRelay returns a Relay starting runs through starter and streaming
// outcomes from hub. A non-empty token is required as a bearer token (or a
// token query parameter for WebSocket clients). Browser requests are only
// accepted from the hub's origins. metrics may be nil.
func NewRelay(starter Starter, hub *Hub, token string, metrics http.Handler, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	return &Relay{
		starter: starter,
		hub:     hub,
		token:   strings.TrimSpace(token),
		metrics: metrics,
		logger:  log,
	}
}

// Handler returns the relay routes.
func (rl *Relay) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(rl.checkOrigin)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if rl.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rl.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(rl.authorize)
		r.Post("/autofill", rl.handleStart)
		r.Get("/events", rl.hub.ServeHTTP)
	})

	return r
}

// Serve listens on addr, which must be a loopback address, until ctx is
// done.
func (rl *Relay) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultListen
	}

	if err := checkLoopback(addr); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %q: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           rl.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	rl.logger.Info("relay listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return fmt.Errorf("serving relay: %w", err)
	case <-ctx.Done():
	}

	rl.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down relay: %w", err)
	}
	return nil
}

func (rl *Relay) handleStart(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Failure("", err))
		return
	}

	// An empty body is a bare start request.
	if len(strings.TrimSpace(string(body))) > 0 {
		var msg Message
		if err := json.Unmarshal(body, &msg); err != nil {
			writeJSON(w, http.StatusBadRequest, Failure("", fmt.Errorf("decoding request: %w", err)))
			return
		}
		if msg.Action != ActionStart {
			writeJSON(w, http.StatusBadRequest, Failure("", fmt.Errorf("unsupported action %q", msg.Action)))
			return
		}
	}

	log := rl.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))

	if err := StartWithFallback(rl.starter, log); err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, overlay.ErrNotApplicationPage):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, autofill.ErrRunInProgress):
			status = http.StatusConflict
		}

		log.Warn("start request failed", zap.Int("status", status), zap.Error(err))
		writeJSON(w, status, Failure("", err))
		return
	}

	writeJSON(w, http.StatusOK, Ack{Status: StatusStarted})
}

func (rl *Relay) checkOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.hub.Origins().Allowed(r) {
			rl.logger.Warn("refusing browser request", zap.String("origin", r.Header.Get("Origin")), zap.String("path", r.URL.Path))
			writeJSON(w, http.StatusForbidden, Failure("", errors.New("origin not allowed")))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *Relay) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.token == "" {
			next.ServeHTTP(w, r)
			return
		}

		presented := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
		if presented == "" {
			presented = r.URL.Query().Get("token")
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(rl.token)) != 1 {
			writeJSON(w, http.StatusUnauthorized, Failure("", errors.New("unauthorized")))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func checkLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid relay address %q: %w", addr, err)
	}
	if host == "localhost" {
		return nil
	}
	if ip := net.ParseIP(host); ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("relay address must be loopback, got %q", addr)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
