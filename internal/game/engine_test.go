package game

import (
	"bytes"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource yields the given secrets in order, repeating the last one.
type fixedSource struct {
	secrets []int
	calls   int
}

func (f *fixedSource) IntN(n int) int {
	i := f.calls
	if i >= len(f.secrets) {
		i = len(f.secrets) - 1
	}
	f.calls++
	return f.secrets[i] - MinValue
}

func newTestEngine(t *testing.T, secrets ...int) *Engine {
	t.Helper()
	clock := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return New(
		WithSource(&fixedSource{secrets: secrets}),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
}

func TestStartRound(t *testing.T) {
	e := newTestEngine(t, 70)
	assert.Equal(t, StateInactive, e.State())

	info := e.StartRound("Alice")
	assert.Equal(t, RoundInfo{PlayerLabel: "Alice", AttemptLimit: 10}, info)

	s := e.Stats()
	assert.Equal(t, "Alice", s.PlayerLabel)
	assert.Equal(t, 70, s.SecretValue)
	assert.True(t, s.Active)
	assert.False(t, s.Won)
	assert.Empty(t, s.Attempts)
	assert.Equal(t, StateActive, e.State())
}

func TestStartRoundKeepsLabelVerbatim(t *testing.T) {
	e := newTestEngine(t, 5)
	info := e.StartRound("   ")
	assert.Equal(t, "   ", info.PlayerLabel)
}

func TestSubmitGuessOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		secret  int
		guess   string
		outcome Outcome
		message string
	}{
		{"lower guess means secret is bigger", 70, "50", OutcomeMore, "the secret number is bigger"},
		{"higher guess means secret is smaller", 30, "50", OutcomeLess, "the secret number is smaller"},
		{"exact", 42, "42", OutcomeCorrect, "congratulations, you guessed the number!"},
		{"whitespace trimmed", 42, " 42\n", OutcomeCorrect, "congratulations, you guessed the number!"},
		{"lower bound", 1, "1", OutcomeCorrect, "congratulations, you guessed the number!"},
		{"upper bound", 100, "100", OutcomeCorrect, "congratulations, you guessed the number!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.secret)
			e.StartRound("Alice")

			res, err := e.SubmitGuess(tt.guess)
			require.NoError(t, err)
			assert.Equal(t, 1, res.Ordinal)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestSubmitGuessContinues(t *testing.T) {
	e := newTestEngine(t, 70)
	e.StartRound("Alice")

	res, err := e.SubmitGuess("50")
	require.NoError(t, err)
	assert.Equal(t, OutcomeMore, res.Outcome)
	assert.Equal(t, StatusContinuing, res.Status)
	assert.False(t, res.Won())
	assert.False(t, res.RoundEnded())
	assert.Empty(t, res.FinalMessage)
	assert.True(t, e.Stats().Active)
}

func TestWinEndsRound(t *testing.T) {
	e := newTestEngine(t, 42)
	e.StartRound("Alice")

	res, err := e.SubmitGuess("42")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCorrect, res.Outcome)
	assert.Equal(t, StatusWon, res.Status)
	assert.True(t, res.Won())
	assert.True(t, res.RoundEnded())

	s := e.Stats()
	assert.False(t, s.Active)
	assert.True(t, s.Won)
	assert.Equal(t, StateConcluded, e.State())

	_, err = e.SubmitGuess("1")
	assert.ErrorIs(t, err, ErrInactiveRound)
	assert.Len(t, e.Stats().Attempts, 1)
}

func TestExhaustion(t *testing.T) {
	e := newTestEngine(t, 99)
	e.StartRound("Bob")

	var last GuessResult
	for i := 1; i <= AttemptLimit; i++ {
		res, err := e.SubmitGuess("1")
		require.NoError(t, err)
		if i < AttemptLimit {
			assert.Equal(t, StatusContinuing, res.Status, "attempt %d", i)
		}
		last = res
	}

	assert.Equal(t, AttemptLimit, last.Ordinal)
	assert.Equal(t, StatusExhausted, last.Status)
	assert.True(t, last.RoundEnded())
	assert.False(t, last.Won())
	assert.Contains(t, last.FinalMessage, "99")

	s := e.Stats()
	assert.False(t, s.Active)
	assert.False(t, s.Won)
	assert.Equal(t, AttemptLimit, s.AttemptCount)

	_, err := e.SubmitGuess("99")
	assert.ErrorIs(t, err, ErrInactiveRound)
	assert.Equal(t, AttemptLimit, e.Stats().AttemptCount)
}

func TestWinOnLastAttemptIsWin(t *testing.T) {
	e := newTestEngine(t, 50)
	e.StartRound("Bob")
	for i := 1; i < AttemptLimit; i++ {
		_, err := e.SubmitGuess("10")
		require.NoError(t, err)
	}
	res, err := e.SubmitGuess("50")
	require.NoError(t, err)
	assert.Equal(t, StatusWon, res.Status)
	assert.Empty(t, res.FinalMessage)
}

func TestInvalidInput(t *testing.T) {
	for _, raw := range []string{"abc", "101", "0", "-5", "", "  ", "12.5", "50abc", "1e2"} {
		t.Run(strconv.Quote(raw), func(t *testing.T) {
			e := newTestEngine(t, 42)
			e.StartRound("Alice")

			_, err := e.SubmitGuess(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var inErr *InputError
			require.True(t, errors.As(err, &inErr))
			assert.Equal(t, raw, inErr.Raw)
			assert.Contains(t, err.Error(), "1 to 100")

			assert.Empty(t, e.Stats().Attempts)
			assert.True(t, e.Stats().Active)
		})
	}
}

func TestInactiveCheckedBeforeInput(t *testing.T) {
	e := newTestEngine(t, 42)
	_, err := e.SubmitGuess("abc")
	assert.ErrorIs(t, err, ErrInactiveRound)
}

func TestOrdinalsHaveNoGaps(t *testing.T) {
	e := newTestEngine(t, 100)
	e.StartRound("Alice")

	inputs := []string{"10", "x", "20", "500", "30", "", "40"}
	for _, in := range inputs {
		_, _ = e.SubmitGuess(in)
	}

	s := e.Stats()
	require.Len(t, s.Attempts, 4)
	for i, a := range s.Attempts {
		assert.Equal(t, i+1, a.Ordinal)
	}
	for i := 1; i < len(s.Attempts); i++ {
		assert.True(t, s.Attempts[i].CreatedAt.After(s.Attempts[i-1].CreatedAt))
	}
}

func TestSecretStableWithinRound(t *testing.T) {
	e := newTestEngine(t, 64, 3)
	e.StartRound("Alice")
	for _, g := range []string{"50", "75", "60", "70", "65"} {
		_, err := e.SubmitGuess(g)
		require.NoError(t, err)
		assert.Equal(t, 64, e.Stats().SecretValue)
	}

	e.StartRound("Alice")
	assert.Equal(t, 3, e.Stats().SecretValue)
	assert.Empty(t, e.Stats().Attempts)
}

func TestReadsAreIdempotent(t *testing.T) {
	e := newTestEngine(t, 30)
	e.StartRound("Alice")
	_, _ = e.SubmitGuess("10")
	_, _ = e.SubmitGuess("40")

	assert.Equal(t, e.Stats(), e.Stats())
	assert.Equal(t, e.History(), e.History())
}

func TestReadsReturnCopies(t *testing.T) {
	e := newTestEngine(t, 30)
	e.StartRound("Alice")
	_, _ = e.SubmitGuess("10")

	s := e.Stats()
	s.Attempts[0].Guess = 99
	h := e.History()
	h[0].Guess = 99

	assert.Equal(t, 10, e.Stats().Attempts[0].Guess)
	assert.Equal(t, 10, e.History()[0].Guess)
}

func TestHistory(t *testing.T) {
	e := newTestEngine(t, 30)
	e.StartRound("Alice")
	_, _ = e.SubmitGuess("10")
	_, _ = e.SubmitGuess("40")
	_, _ = e.SubmitGuess("30")

	assert.Equal(t, []HistoryEntry{
		{Ordinal: 1, Guess: 10, Outcome: OutcomeMore, Message: "the secret number is bigger"},
		{Ordinal: 2, Guess: 40, Outcome: OutcomeLess, Message: "the secret number is smaller"},
		{Ordinal: 3, Guess: 30, Outcome: OutcomeCorrect, Message: "congratulations, you guessed the number!"},
	}, e.History())
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, 30, 80)
	e.StartRound("Alice")
	_, _ = e.SubmitGuess("10")

	e.Reset()
	s := e.Stats()
	assert.False(t, s.Active)
	assert.Empty(t, s.Attempts)
	assert.Equal(t, 0, s.SecretValue)
	assert.Empty(t, e.History())
	assert.Equal(t, StateInactive, e.State())

	_, err := e.SubmitGuess("30")
	assert.ErrorIs(t, err, ErrInactiveRound)

	e.StartRound("Alice")
	assert.Equal(t, 80, e.Stats().SecretValue)
	_, err = e.SubmitGuess("80")
	assert.NoError(t, err)
}

func TestHint(t *testing.T) {
	e := newTestEngine(t, 17)
	e.StartRound("Alice")
	_, err := e.Hint()
	assert.ErrorIs(t, err, ErrHintsDisabled)

	d := New(WithSource(&fixedSource{secrets: []int{17}}), WithDebug(true))
	_, err = d.Hint()
	assert.ErrorIs(t, err, ErrInactiveRound)

	d.StartRound("Alice")
	v, err := d.Hint()
	require.NoError(t, err)
	assert.Equal(t, 17, v)
}

func TestFreshSecretsSpreadAcrossRange(t *testing.T) {
	e := New(WithSource(NewSeededSource(7)))
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		e.Reset()
		e.StartRound("Alice")
		v := e.Stats().SecretValue
		require.GreaterOrEqual(t, v, MinValue)
		require.LessOrEqual(t, v, MaxValue)
		seen[v] = true
	}
	assert.Greater(t, len(seen), 90)
}

func TestRoundStartLogOmitsSecretUnlessDebug(t *testing.T) {
	var plain, debug bytes.Buffer

	e := New(WithSource(&fixedSource{secrets: []int{73}}), WithLogger(zerolog.New(&plain)))
	e.StartRound("Alice")
	assert.Contains(t, plain.String(), `"message":"round started"`)
	assert.NotContains(t, plain.String(), "secret")

	d := New(WithSource(&fixedSource{secrets: []int{73}}), WithLogger(zerolog.New(&debug)), WithDebug(true))
	d.StartRound("Alice")
	assert.Contains(t, debug.String(), `"secret":73`)
}
