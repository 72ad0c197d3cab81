// internal/game/types.go
//
// Core type definitions for the number-guessing engine.
// Defines:
//   - Outcome: classification of a guess relative to the secret (more/less/correct).
//   - Status:  tagged result of a guess (continuing/won/exhausted).
//   - Attempt, GuessResult, RoundInfo, Snapshot, HistoryEntry: values handed to adapters.

package game

import "time"

const (
	// MinValue and MaxValue bound both the secret and every accepted guess (inclusive).
	MinValue = 1
	MaxValue = 100

	// AttemptLimit is the number of guesses allowed per round.
	AttemptLimit = 10

	// DefaultPlayerLabel is substituted by adapters when the player gives no name.
	DefaultPlayerLabel = "Player"

	// unsetSecret marks "no round" (before the first start and after Reset).
	unsetSecret = 0
)

// Outcome describes where the secret lies relative to a guess.
//   - "more":    the secret is bigger than the guess.
//   - "less":    the secret is smaller than the guess.
//   - "correct": the guess equals the secret.
type Outcome string

const (
	OutcomeMore    Outcome = "more"
	OutcomeLess    Outcome = "less"
	OutcomeCorrect Outcome = "correct"
)

// Status is the round-level effect of a single accepted guess.
type Status string

const (
	StatusContinuing Status = "continuing"
	StatusWon        Status = "won"
	StatusExhausted  Status = "exhausted"
)

// State is the derived lifecycle state of the engine.
type State string

const (
	StateInactive  State = "inactive"
	StateActive    State = "active"
	StateConcluded State = "concluded"
)

// Attempt is one validated guess and its recorded outcome.
type Attempt struct {
	Ordinal   int       `json:"ordinal"`
	Guess     int       `json:"guessValue"`
	Outcome   Outcome   `json:"outcome"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// GuessResult is returned by SubmitGuess. FinalMessage is only set for StatusExhausted.
type GuessResult struct {
	Attempt
	Status       Status `json:"status"`
	FinalMessage string `json:"finalMessage,omitempty"`
}

// Won reports whether this guess found the secret.
func (r GuessResult) Won() bool { return r.Status == StatusWon }

// RoundEnded reports whether this guess concluded the round, by win or by exhaustion.
func (r GuessResult) RoundEnded() bool {
	return r.Status == StatusWon || r.Status == StatusExhausted
}

// RoundInfo is the player-facing view of a freshly started round. It never carries the secret.
type RoundInfo struct {
	PlayerLabel  string `json:"playerLabel"`
	AttemptLimit int    `json:"attemptLimit"`
}

// Snapshot is a full read of engine state. The engine does not hide SecretValue;
// concealing it is up to the presentation layer.
type Snapshot struct {
	PlayerLabel  string    `json:"playerLabel"`
	SecretValue  int       `json:"secretValue"`
	Attempts     []Attempt `json:"attempts"`
	AttemptCount int       `json:"currentAttemptCount"`
	AttemptLimit int       `json:"attemptLimit"`
	Active       bool      `json:"active"`
	Won          bool      `json:"won"`
}

// HistoryEntry is the display projection of an Attempt.
type HistoryEntry struct {
	Ordinal int     `json:"ordinal"`
	Guess   int     `json:"guessValue"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
}
