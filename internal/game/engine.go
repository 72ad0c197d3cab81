// internal/game/engine.go
//
// Core engine for a single-player number-guessing round.
// Responsibilities:
//   - Start rounds with a secret drawn uniformly from [MinValue, MaxValue].
//   - Validate and apply guesses (integer, in range, round active).
//   - Classify guesses (more/less/correct) and record an append-only attempt log.
//   - Track state transitions: inactive → active → concluded (won/exhausted).
//
// Notes:
//   - The engine is synchronous and not safe for concurrent use; adapters serialize calls.
//   - Randomness and time are injected so tests can pin the secret and timestamps.
package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Engine owns exactly one active-or-finished round and its attempts.
type Engine struct {
	src   Source
	now   func() time.Time
	debug bool
	log   zerolog.Logger

	player   string
	secret   int
	attempts []Attempt
	active   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the randomness used to draw secrets.
func WithSource(src Source) Option { return func(e *Engine) { e.src = src } }

// WithClock sets the clock used to stamp attempts.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithDebug enables Hint.
func WithDebug(on bool) Option { return func(e *Engine) { e.debug = on } }

// WithLogger sets the logger for round lifecycle events.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

// New constructs an inactive engine. StartRound must be called before SubmitGuess.
func New(opts ...Option) *Engine {
	e := &Engine{
		src:      CryptoSource{},
		now:      time.Now,
		log:      zerolog.Nop(),
		attempts: []Attempt{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// StartRound discards any previous round and begins a new one for playerLabel.
// The label is stored as given.
func (e *Engine) StartRound(playerLabel string) RoundInfo {
	e.secret = drawSecret(e.src)
	e.attempts = []Attempt{}
	e.player = playerLabel
	e.active = true

	ev := e.log.Debug().Str("player", playerLabel)
	if e.debug {
		ev = ev.Int("secret", e.secret)
	}
	ev.Msg("round started")
	return RoundInfo{PlayerLabel: e.player, AttemptLimit: AttemptLimit}
}

// SubmitGuess validates raw, records one attempt and reports its effect on the round.
//
// Validation order:
//   - No active round → ErrInactiveRound.
//   - Not an integer in [MinValue, MaxValue] → *InputError (ErrInvalidInput).
//
// A failed call leaves the engine untouched.
func (e *Engine) SubmitGuess(raw string) (GuessResult, error) {
	if !e.active {
		return GuessResult{}, ErrInactiveRound
	}
	guess, err := parseGuess(raw)
	if err != nil {
		return GuessResult{}, err
	}

	outcome, message := classify(guess, e.secret)
	a := Attempt{
		Ordinal:   len(e.attempts) + 1,
		Guess:     guess,
		Outcome:   outcome,
		Message:   message,
		CreatedAt: e.now(),
	}
	e.attempts = append(e.attempts, a)

	res := GuessResult{Attempt: a, Status: StatusContinuing}
	switch {
	case outcome == OutcomeCorrect:
		e.active = false
		res.Status = StatusWon
	case a.Ordinal >= AttemptLimit:
		e.active = false
		res.Status = StatusExhausted
		res.FinalMessage = fmt.Sprintf("game over, the secret number was %d", e.secret)
	}

	if res.RoundEnded() {
		e.log.Debug().
			Str("player", e.player).
			Str("status", string(res.Status)).
			Int("attempts", a.Ordinal).
			Msg("round ended")
	}
	return res, nil
}

// Stats returns a copy of the full round state.
func (e *Engine) Stats() Snapshot {
	return Snapshot{
		PlayerLabel:  e.player,
		SecretValue:  e.secret,
		Attempts:     append([]Attempt{}, e.attempts...),
		AttemptCount: len(e.attempts),
		AttemptLimit: AttemptLimit,
		Active:       e.active,
		Won:          e.won(),
	}
}

// History returns the display projection of the attempt log.
func (e *Engine) History() []HistoryEntry {
	out := make([]HistoryEntry, 0, len(e.attempts))
	for _, a := range e.attempts {
		out = append(out, HistoryEntry{
			Ordinal: a.Ordinal,
			Guess:   a.Guess,
			Outcome: a.Outcome,
			Message: a.Message,
		})
	}
	return out
}

// Reset clears the round without starting a new one.
func (e *Engine) Reset() {
	e.secret = unsetSecret
	e.attempts = []Attempt{}
	e.active = false
}

// State reports the derived lifecycle state.
func (e *Engine) State() State {
	switch {
	case e.active:
		return StateActive
	case e.secret != unsetSecret && len(e.attempts) > 0:
		return StateConcluded
	default:
		return StateInactive
	}
}

// Hint reveals the secret. Intended for debugging only.
func (e *Engine) Hint() (int, error) {
	if !e.debug {
		return 0, ErrHintsDisabled
	}
	if e.secret == unsetSecret {
		return 0, ErrInactiveRound
	}
	return e.secret, nil
}

// won reports whether any attempt hit the secret.
func (e *Engine) won() bool {
	for _, a := range e.attempts {
		if a.Outcome == OutcomeCorrect {
			return true
		}
	}
	return false
}

// parseGuess accepts a base-10 integer (surrounding whitespace ignored) in range.
func parseGuess(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < MinValue || n > MaxValue {
		return 0, &InputError{Raw: raw}
	}
	return n, nil
}

// classify compares guess against secret. Exact equality is the only tie.
func classify(guess, secret int) (Outcome, string) {
	switch {
	case guess < secret:
		return OutcomeMore, "the secret number is bigger"
	case guess > secret:
		return OutcomeLess, "the secret number is smaller"
	default:
		return OutcomeCorrect, "congratulations, you guessed the number!"
	}
}
