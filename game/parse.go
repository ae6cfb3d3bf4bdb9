package game

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidPosition = errors.New("invalid position")

// ParsePosition reads a position either from a single four digit argument ("2111") or from four
// separate integer arguments. The result is normalized.
func ParsePosition(args []string) (Position, error) {
	var hands []string
	switch {
	case len(args) == 1 && len(args[0]) == 4:
		for _, digit := range args[0] {
			hands = append(hands, string(digit))
		}
	case len(args) == 4:
		hands = args
	default:
		return Position{}, fmt.Errorf("%w: expected abcd or a b c d, got %d arguments", ErrInvalidPosition, len(args))
	}

	var counts [4]int
	for i, hand := range hands {
		count, err := strconv.Atoi(hand)
		if err != nil {
			return Position{}, fmt.Errorf("%w: hand %q is not a number", ErrInvalidPosition, hand)
		}
		if count < 0 || count > MaxHand {
			return Position{}, fmt.Errorf("%w: hand %d is outside [0, %d]", ErrInvalidPosition, count, MaxHand)
		}
		counts[i] = count
	}

	return NewPosition(counts[0], counts[1], counts[2], counts[3]).Ordered(), nil
}
