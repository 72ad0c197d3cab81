// internal/httpserver/server.go
//
// HTTP presentation adapter for the guess-number engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Round endpoints: start, guess, stats, history, reset under /round.
//   - Debug hint endpoint (only when enabled, JWT-gated): GET /debug/hint.
//
// Notes:
//   - All engine access goes through a session.Session; the server holds no game state.
//   - The secret is left out of /round/stats until the round has concluded.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessnumber/internal/game"
	"github.com/robalobadob/guessnumber/internal/session"
)

// Options tune the router. Zero values fall back to development defaults.
type Options struct {
	ClientOrigin   string
	RequestTimeout time.Duration
	DebugHints     bool
	JWTSecret      []byte
}

// Server bundles the router and the game session.
type Server struct {
	r    *chi.Mux
	sess *session.Session
	opts Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(sess *session.Session, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	s := &Server{r: chi.NewRouter(), sess: sess, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                          // zerolog request log
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"guess-number","endpoints":["/health","POST /round/start","POST /round/guess","GET /round/stats","GET /round/history","POST /round/reset"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/round", func(r chi.Router) {
		r.Post("/start", s.handleStart)
		r.Post("/guess", s.handleGuess)
		r.Get("/stats", s.handleStats)
		r.Get("/history", s.handleHistory)
		r.Post("/reset", s.handleReset)
	})

	if opts.DebugHints {
		s.r.With(requireDebugToken(opts.JWTSecret)).Get("/debug/hint", s.handleHint)
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ ROUND --------------------------------------

// startReq/Res payloads for POST /round/start.
type startReq struct {
	PlayerLabel string `json:"playerLabel"`
}

// handleStart begins a new round. A blank label or an empty body becomes
// game.DefaultPlayerLabel; a malformed body is rejected and the current round kept.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", "request body must be JSON")
		return
	}

	label := strings.TrimSpace(req.PlayerLabel)
	if label == "" {
		label = game.DefaultPlayerLabel
	}
	round := s.sess.Start(label)
	log.Info().Str("roundId", round.ID).Str("player", label).Msg("round started")
	writeJSON(w, http.StatusOK, round)
}

// guessReq is the payload for POST /round/guess. Guess may be a JSON string or number.
type guessReq struct {
	RoundID string   `json:"roundId"`
	Guess   rawGuess `json:"guess"`
}

// rawGuess keeps the guess as text so the engine does the validation.
type rawGuess string

func (g *rawGuess) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*g = rawGuess(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*g = rawGuess(n.String())
	return nil
}

// guessRes flattens game.GuessResult and adds the derived flags.
type guessRes struct {
	game.GuessResult
	Won        bool `json:"won"`
	RoundEnded bool `json:"roundEnded"`
}

// handleGuess applies a guess to the current round.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "request body must be JSON")
		return
	}
	res, err := s.sess.Guess(req.RoundID, string(req.Guess))
	switch {
	case errors.Is(err, game.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	case errors.Is(err, game.ErrInactiveRound):
		writeError(w, http.StatusConflict, "inactive_round", "start a new round first")
		return
	case errors.Is(err, session.ErrStaleRound):
		writeError(w, http.StatusConflict, "stale_round", err.Error())
		return
	case err != nil:
		log.Error().Err(err).Msg("submit guess")
		writeError(w, http.StatusInternalServerError, "internal", "guess failed")
		return
	}
	if res.RoundEnded() {
		log.Info().Str("status", string(res.Status)).Int("attempts", res.Ordinal).Msg("round ended")
	}
	writeJSON(w, http.StatusOK, guessRes{GuessResult: res, Won: res.Won(), RoundEnded: res.RoundEnded()})
}

// statsRes mirrors game.Snapshot with the secret hidden while the round is in play.
type statsRes struct {
	RoundID      string         `json:"roundId,omitempty"`
	State        game.State     `json:"state"`
	PlayerLabel  string         `json:"playerLabel"`
	SecretValue  *int           `json:"secretValue,omitempty"`
	Attempts     []game.Attempt `json:"attempts"`
	AttemptCount int            `json:"currentAttemptCount"`
	AttemptLimit int            `json:"attemptLimit"`
	Active       bool           `json:"active"`
	Won          bool           `json:"won"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id, snap, state := s.sess.Stats()
	res := statsRes{
		RoundID:      id,
		State:        state,
		PlayerLabel:  snap.PlayerLabel,
		Attempts:     snap.Attempts,
		AttemptCount: snap.AttemptCount,
		AttemptLimit: snap.AttemptLimit,
		Active:       snap.Active,
		Won:          snap.Won,
	}
	if state == game.StateConcluded {
		secret := snap.SecretValue
		res.SecretValue = &secret
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.History())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.sess.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------------- util --------------------------------------

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError emits {"error": code, "message": msg}.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}
