package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessnumber/internal/game"
)

type constSource int

func (c constSource) IntN(int) int { return int(c) - game.MinValue }

func run(t *testing.T, secret int, input string) (string, *game.Engine) {
	t.Helper()
	e := game.New(game.WithSource(constSource(secret)))
	var out bytes.Buffer
	require.NoError(t, New(e, strings.NewReader(input), &out).Run())
	return out.String(), e
}

func TestWinningSession(t *testing.T) {
	out, _ := run(t, 42, "Alice\n50\n\nabc\n42\nn\n")

	assert.Contains(t, out, "Hello, Alice! You have 10 attempts.")
	assert.Contains(t, out, "The secret number is smaller.")
	assert.Contains(t, out, "Please enter a number.")
	assert.Contains(t, out, "Please enter a number from 1 to 100.")
	assert.Contains(t, out, "Congratulations, you guessed the number.")
	assert.Contains(t, out, "You found 42 in 2 attempts.")
	assert.Contains(t, out, "Bye, Alice!")
}

func TestBlankNameUsesDefault(t *testing.T) {
	out, _ := run(t, 42, "   \n:quit\n")
	assert.Contains(t, out, "Hello, "+game.DefaultPlayerLabel+"!")
}

func TestExhaustedSession(t *testing.T) {
	input := "Bob\n" + strings.Repeat("1\n", game.AttemptLimit) + "n\n"
	out, _ := run(t, 99, input)

	assert.Contains(t, out, "Attempt 10/10: ")
	assert.Contains(t, out, "Game over, the secret number was 99.")
	assert.NotContains(t, out, "You found")
}

func TestCommands(t *testing.T) {
	out, _ := run(t, 30, "Ann\n:history\n10\n40\n:history\n:stats\n:new\n:stats\n:quit\n")

	assert.Contains(t, out, "No attempts yet.")
	assert.Contains(t, out, " 1.  10  the secret number is bigger")
	assert.Contains(t, out, " 2.  40  the secret number is smaller")
	assert.Contains(t, out, "Ann: 2 of 10 attempts used.")
	assert.Contains(t, out, "New round.")
	assert.Contains(t, out, "Ann: 0 of 10 attempts used.")
	assert.Contains(t, out, "Bye, Ann!")
}

func TestPlayAgainStartsFreshRound(t *testing.T) {
	out, e := run(t, 7, "Cy\n7\ny\n3\n")

	assert.Equal(t, 2, strings.Count(out, "Hello, Cy!"))
	assert.Contains(t, out, "The secret number is bigger.")
	assert.Equal(t, game.StateInactive, e.State())
}

func TestEOFBeforeName(t *testing.T) {
	out, e := run(t, 7, "")
	assert.Contains(t, out, "Your name: ")
	assert.Equal(t, game.StateInactive, e.State())
}
