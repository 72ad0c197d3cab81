package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a guess is not an integer in [MinValue, MaxValue].
	ErrInvalidInput = errors.New("invalid input")

	// ErrInactiveRound is returned when a guess arrives with no round in progress.
	ErrInactiveRound = errors.New("game is not active")

	// ErrHintsDisabled is returned by Hint unless the engine was built WithDebug(true).
	ErrHintsDisabled = errors.New("hints are disabled")
)

// InputError carries the rejected raw input. It unwraps to ErrInvalidInput.
type InputError struct {
	Raw string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("please enter a number from %d to %d", MinValue, MaxValue)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }
