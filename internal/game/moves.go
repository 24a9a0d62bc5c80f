package game

// LegalMoves returns every move the given player may make on b. The result is
// never empty for a player on the board: with nothing else available it is
// exactly {Pass}. Unknown colours yield nil.
func LegalMoves(b *Board, colour Colour) MoveSet {
	p, ok := b.player(colour)
	if !ok {
		return nil
	}
	return legalMoves(b, p)
}

func legalMoves(b *Board, p *Player) MoveSet {
	moves := NewMoveSet()
	singles := singleMoves(b, p, p.Location)
	for _, m := range singles {
		moves.Add(m)
	}

	if p.IsEvader() && p.Tickets.Has(Double, 1) && b.round < len(b.schedule)-1 {
		for _, first := range singles {
			// Second legs are checked against the board as it stands now, so
			// occupancy ignores the fact that the first leg moved the evader.
			for _, second := range singleMoves(b, p, first.First.Destination) {
				if first.First.Ticket == second.First.Ticket && !p.Tickets.Has(first.First.Ticket, 2) {
					continue
				}
				moves.Add(DoubleMove(p.Colour, first.First, second.First))
			}
		}
	}

	if moves.Len() == 0 {
		moves.Add(PassMove(p.Colour))
	}
	return moves
}

// singleMoves lists one-hop moves from node, skipping nodes held by seekers.
// A player holding secret tickets may also take any edge with one.
func singleMoves(b *Board, p *Player, from int) []Move {
	var moves []Move
	for _, edge := range b.network.EdgesFrom(from) {
		if b.occupiedBySeeker(edge.To) {
			continue
		}
		ticket := TicketFor(edge.Transport)
		if p.Tickets.Has(ticket, 1) {
			moves = append(moves, TicketMove(p.Colour, ticket, edge.To))
		}
		if ticket != Secret && p.Tickets.Has(Secret, 1) {
			moves = append(moves, TicketMove(p.Colour, Secret, edge.To))
		}
	}
	return moves
}

func isStuck(b *Board, p *Player) bool {
	return legalMoves(b, p).OnlyPass()
}
