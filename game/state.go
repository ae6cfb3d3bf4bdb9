package game

import (
	"fmt"
)

// MaxHand is the highest count a hand can hold. Anything above it busts the hand back to 0.
const MaxHand = 4

// Position is a snapshot of one ply: the hands of the player to move (Current) and the hands of
// the player waiting (Next). Positions are values; operations on them always return a new copy.
type Position struct {
	Current [2]int // Hands of the player to move
	Next    [2]int // Hands of the opponent
}

// NewPosition returns the position with the given hand counts, unnormalized.
func NewPosition(current0, current1, next0, next1 int) Position {
	return Position{
		Current: [2]int{current0, current1},
		Next:    [2]int{next0, next1},
	}
}

// Order normalizes both pairs so the larger hand comes first.
func (p *Position) Order() {
	if p.Current[1] > p.Current[0] {
		p.Current[0], p.Current[1] = p.Current[1], p.Current[0]
	}
	if p.Next[1] > p.Next[0] {
		p.Next[0], p.Next[1] = p.Next[1], p.Next[0]
	}
}

// Ordered returns a normalized copy of the position.
func (p Position) Ordered() Position {
	p.Order()
	return p
}

// Turn passes the move to the opponent.
func (p Position) Turn() Position {
	return Position{
		Current: p.Next,
		Next:    p.Current,
	}
}

// Attack adds add0 and add1 to the opponent's hands. Each hand that ends up above MaxHand is
// reset to 0 on its own.
func (p Position) Attack(add0, add1 int) Position {
	p.Next[0] += add0
	p.Next[1] += add1

	if p.Next[1] > MaxHand {
		p.Next[1] = 0
	}
	if p.Next[0] > MaxHand {
		p.Next[0] = 0
	}
	return p
}

// Transfer moves count from the first hand of the mover to the second one (a negative count moves
// the other way). An illegal transfer leaves the position unchanged.
func (p Position) Transfer(count int) Position {
	if count > 0 && count <= p.Current[0] && p.Current[1]+count <= MaxHand {
		p.Current[0] -= count
		p.Current[1] += count
	} else if count < 0 && p.Current[0]-count <= MaxHand && p.Current[1] >= -count {
		p.Current[0] -= count
		p.Current[1] += count
	}
	return p
}

// Lost reports whether the player to move has no hands left.
func (p Position) Lost() bool {
	return p.Current == [2]int{0, 0}
}

// Won reports whether the opponent has no hands left.
func (p Position) Won() bool {
	return p.Next == [2]int{0, 0}
}

// Valid reports whether every hand lies in [0, MaxHand].
func (p Position) Valid() bool {
	for _, hand := range [4]int{p.Current[0], p.Current[1], p.Next[0], p.Next[1]} {
		if hand < 0 || hand > MaxHand {
			return false
		}
	}
	return true
}

// String renders the position as its four digits, e.g. "2111".
func (p Position) String() string {
	return fmt.Sprintf("%d%d%d%d", p.Current[0], p.Current[1], p.Next[0], p.Next[1])
}
