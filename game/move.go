package game

// ActionType represents the type of action a player can perform.
type ActionType int

const (
	AttackAction   ActionType = iota // Tap an opponent hand with one of ours
	TransferAction                   // Move fingers between our own hands
)

// Move represents a move in the game.
// For attacks, From is the mover's hand and To the opponent's hand.
// For transfers, Count is the number of fingers moved from the first hand to the second.
type Move struct {
	Action ActionType
	From   int
	To     int
	Count  int
}

// Candidates lists every move worth trying from p, in a fixed order: attacks on the opponent's
// first hand, attacks on its second hand, then transfers of 1, -1, 2, -2, ... up to MaxHand-1.
// Transfers are listed whether or not they are legal.
func (p Position) Candidates() []Move {
	moves := make([]Move, 0, 4+2*(MaxHand-1))

	for to := 0; to < 2; to++ {
		if p.Next[to] == 0 {
			continue
		}
		for from := 0; from < 2; from++ {
			moves = append(moves, Move{Action: AttackAction, From: from, To: to})
		}
	}

	for i := 1; i < MaxHand; i++ {
		moves = append(moves, Move{Action: TransferAction, Count: i})
		moves = append(moves, Move{Action: TransferAction, Count: -i})
	}
	return moves
}

// Play applies the move and passes the turn, returning the unnormalized successor.
func (p Position) Play(m Move) Position {
	switch m.Action {
	case AttackAction:
		add := p.Current[m.From]
		if m.To == 0 {
			return p.Attack(add, 0).Turn()
		}
		return p.Attack(0, add).Turn()
	case TransferAction:
		return p.Transfer(m.Count).Turn()
	default:
		panic("unknown action type")
	}
}

// Successors plays every candidate move in order.
func (p Position) Successors() []Position {
	moves := p.Candidates()
	successors := make([]Position, len(moves))
	for i, move := range moves {
		successors[i] = p.Play(move)
	}
	return successors
}
