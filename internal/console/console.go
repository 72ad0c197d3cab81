// internal/console/console.go
//
// Terminal presentation adapter for the guess-number engine.
// Reads one line at a time and forwards it to the engine; renders results as text.
//
// Commands (any time during a round):
//   :history   list attempts so far
//   :stats     show attempts used and remaining
//   :new       abandon the round and start another
//   :quit      leave (EOF does the same)

package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessnumber/internal/game"
)

// Runner drives one engine from a line-oriented input.
type Runner struct {
	engine *game.Engine
	in     *bufio.Scanner
	out    io.Writer
}

// New creates a Runner. The engine is owned by the caller.
func New(e *game.Engine, in io.Reader, out io.Writer) *Runner {
	return &Runner{engine: e, in: bufio.NewScanner(in), out: out}
}

// errQuit ends Run without error.
var errQuit = errors.New("quit")

// Run plays rounds until the player quits or input ends.
func (r *Runner) Run() error {
	r.printf("Guess the number between %d and %d.\n", game.MinValue, game.MaxValue)
	name, ok := r.prompt("Your name: ")
	if !ok {
		return r.in.Err()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = game.DefaultPlayerLabel
	}

	for {
		err := r.playRound(name)
		if errors.Is(err, errQuit) {
			r.engine.Reset()
			r.printf("Bye, %s!\n", name)
			return nil
		}
		if err != nil {
			return err
		}
		again, ok := r.prompt("Play again? (y/n): ")
		if !ok || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(again)), "y") {
			r.engine.Reset()
			r.printf("Bye, %s!\n", name)
			return r.in.Err()
		}
	}
}

// playRound runs a single round to its end. It returns errQuit when the player leaves.
func (r *Runner) playRound(name string) error {
	info := r.engine.StartRound(name)
	log.Debug().Str("player", info.PlayerLabel).Msg("console round started")
	r.printf("Hello, %s! You have %d attempts.\n", info.PlayerLabel, info.AttemptLimit)

	for {
		line, ok := r.prompt(fmt.Sprintf("Attempt %d/%d: ", r.engine.Stats().AttemptCount+1, info.AttemptLimit))
		if !ok {
			if err := r.in.Err(); err != nil {
				return err
			}
			return errQuit
		}
		line = strings.TrimSpace(line)

		switch line {
		case "":
			r.printf("Please enter a number.\n")
			continue
		case ":quit":
			return errQuit
		case ":new":
			info = r.engine.StartRound(name)
			r.printf("New round. You have %d attempts.\n", info.AttemptLimit)
			continue
		case ":history":
			r.printHistory()
			continue
		case ":stats":
			s := r.engine.Stats()
			r.printf("%s: %d of %d attempts used.\n", s.PlayerLabel, s.AttemptCount, s.AttemptLimit)
			continue
		}

		res, err := r.engine.SubmitGuess(line)
		if errors.Is(err, game.ErrInvalidInput) {
			r.printf("%s.\n", capitalize(err.Error()))
			continue
		}
		if err != nil {
			return err
		}

		r.printf("%s.\n", capitalize(strings.TrimSuffix(res.Message, "!")))
		switch res.Status {
		case game.StatusWon:
			r.printf("You found %d in %d attempts.\n", res.Guess, res.Ordinal)
			return nil
		case game.StatusExhausted:
			r.printf("%s.\n", capitalize(res.FinalMessage))
			return nil
		}
	}
}

func (r *Runner) printHistory() {
	h := r.engine.History()
	if len(h) == 0 {
		r.printf("No attempts yet.\n")
		return
	}
	for _, e := range h {
		r.printf("%2d. %3d  %s\n", e.Ordinal, e.Guess, e.Message)
	}
}

// prompt writes p and reads one line. ok is false at EOF or on a read error.
func (r *Runner) prompt(p string) (string, bool) {
	r.printf("%s", p)
	if !r.in.Scan() {
		r.printf("\n")
		return "", false
	}
	return r.in.Text(), true
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
