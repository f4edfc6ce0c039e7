package game

import "github.com/starpower/starpower-server-go/internal/game/cards"

// playPowerFromHand attaches the modify-stat card at handIndex to the
// player's board star at targetIndex. The card's deltas are applied to the
// star's base stats once, here; the card stays attached as an audit trail.
func playPowerFromHand(p *Player, handIndex, targetIndex int) (*cards.ModifyStatCard, *cards.StarCard, *Rejection) {
	if handIndex < 0 || handIndex >= len(p.Hand) {
		return nil, nil, reject(RejectInvalidHandIndex, "%s has no hand card at index %d", p.Name, handIndex)
	}
	power, ok := p.Hand[handIndex].(*cards.ModifyStatCard)
	if !ok {
		return nil, nil, reject(RejectWrongCardKind, "card at index %d is %s, not a modify-stat power", handIndex, p.Hand[handIndex].Kind())
	}
	if len(p.Board) == 0 {
		return nil, nil, reject(RejectNoBoardStar, "%s has no board star to attach %q to", p.Name, power.Name)
	}
	if targetIndex < 0 || targetIndex >= len(p.Board) {
		return nil, nil, reject(RejectInvalidBoardIndex, "%s has no board star at index %d", p.Name, targetIndex)
	}

	target := p.Board[targetIndex]
	target.ApplyModifiers(power.Modifiers)
	target.Powers = append(target.Powers, power)
	p.removeFromHand(handIndex)
	return power, target, nil
}

// stealStarFromOpponent moves the victim's board star at opponentStarIndex,
// attachments intact, onto the stealer's board. When the stealer's board is
// full a sacrifice index is mandatory and that star is discarded first. The
// steal card itself goes to the discard pile. This is the only operation
// touching two players' state; every precondition is checked before the
// first mutation so the move is all-or-nothing.
func stealStarFromOpponent(stealer, victim *Player, handIndex, opponentStarIndex int, sacrificeIndex *int, discard *[]cards.Card, maxBoard int) (*cards.StarCard, *Rejection) {
	if handIndex < 0 || handIndex >= len(stealer.Hand) {
		return nil, reject(RejectInvalidHandIndex, "%s has no hand card at index %d", stealer.Name, handIndex)
	}
	steal, ok := stealer.Hand[handIndex].(*cards.StealStarCard)
	if !ok {
		return nil, reject(RejectWrongCardKind, "card at index %d is %s, not a steal card", handIndex, stealer.Hand[handIndex].Kind())
	}
	if len(victim.Board) == 0 {
		return nil, reject(RejectOpponentBoardEmpty, "%s has no board star to steal", victim.Name)
	}
	if opponentStarIndex < 0 || opponentStarIndex >= len(victim.Board) {
		return nil, reject(RejectInvalidBoardIndex, "%s has no board star at index %d", victim.Name, opponentStarIndex)
	}
	boardFull := len(stealer.Board) >= maxBoard
	if boardFull {
		if sacrificeIndex == nil {
			return nil, reject(RejectBoardFull, "%s's board is full; a sacrifice index is required", stealer.Name)
		}
		if *sacrificeIndex < 0 || *sacrificeIndex >= len(stealer.Board) {
			return nil, reject(RejectInvalidBoardIndex, "%s has no board star at index %d", stealer.Name, *sacrificeIndex)
		}
	}

	if boardFull {
		sacrificed := stealer.removeFromBoard(*sacrificeIndex)
		*discard = append(*discard, sacrificed)
	}
	stolen := victim.removeFromBoard(opponentStarIndex)
	stealer.Board = append(stealer.Board, stolen)
	stealer.removeFromHand(handIndex)
	*discard = append(*discard, steal)
	return stolen, nil
}
