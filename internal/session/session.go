// internal/session/session.go
//
// Concurrency-safe holder for the process's single game engine.
// The engine itself is synchronous; adapters that may receive overlapping calls
// (the HTTP server) go through a Session instead.
//
// Characteristics:
//   - Exactly one *game.Engine, built by the composition root and passed in.
//   - Guarded by an RWMutex (pure reads share the lock, mutations are exclusive).
//   - Every started round gets a uuid so clients can detect they are guessing on a stale round.

package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/guessnumber/internal/game"
)

// ErrStaleRound is returned when a guess names a round that is no longer current.
var ErrStaleRound = errors.New("round is no longer current")

// Round is a started round as seen by adapters.
type Round struct {
	ID string `json:"roundId"`
	game.RoundInfo
}

// Session serializes access to one engine.
type Session struct {
	mu      sync.RWMutex // guards engine and roundID
	engine  *game.Engine
	roundID string
	newID   func() string
}

// New wraps e. The session takes ownership; callers must not use e directly afterwards.
func New(e *game.Engine) *Session {
	return &Session{engine: e, newID: uuid.NewString}
}

// Start begins a new round, replacing any previous one.
func (s *Session) Start(playerLabel string) Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := s.engine.StartRound(playerLabel)
	s.roundID = s.newID()
	return Round{ID: s.roundID, RoundInfo: info}
}

// Guess submits raw to the current round. An empty roundID skips the staleness check.
func (s *Session) Guess(roundID, raw string) (game.GuessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if roundID != "" && roundID != s.roundID {
		return game.GuessResult{}, ErrStaleRound
	}
	return s.engine.SubmitGuess(raw)
}

// Stats returns a snapshot of the current round.
func (s *Session) Stats() (string, game.Snapshot, game.State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roundID, s.engine.Stats(), s.engine.State()
}

// History returns the attempt history of the current round.
func (s *Session) History() []game.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.History()
}

// Reset clears the round. The next Guess fails until Start is called.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Reset()
	s.roundID = ""
}

// Hint proxies the engine's debug accessor.
func (s *Session) Hint() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Hint()
}
