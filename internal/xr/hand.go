package xr

import (
	"fmt"
	"strings"
)

// Hand is the handedness of a controller.
type Hand int

const (
	Left Hand = iota
	Right
)

// Hands lists both hands in slot order.
var Hands = [2]Hand{Left, Right}

func (h Hand) String() string {
	if h == Right {
		return "right"
	}
	return "left"
}

// Other returns the opposite hand.
func (h Hand) Other() Hand {
	if h == Left {
		return Right
	}
	return Left
}

func (h Hand) valid() bool {
	return h == Left || h == Right
}

// ParseHand accepts "left"/"right" and the one-letter forms used on the
// serial line protocol.
func ParseHand(s string) (Hand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown hand %q", s)
}
