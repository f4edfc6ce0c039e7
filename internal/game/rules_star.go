package game

import "github.com/starpower/starpower-server-go/internal/game/cards"

// playStarFromHand moves the star at handIndex from the player's hand to
// their board. When the board is at capacity a replacement index is
// mandatory: the indicated board star is moved to the discard pile, with all
// its attachments, before the new star is appended. All validation happens
// before the first mutation.
func playStarFromHand(p *Player, handIndex int, replaceIndex *int, discard *[]cards.Card, maxBoard int) (*cards.StarCard, *Rejection) {
	if handIndex < 0 || handIndex >= len(p.Hand) {
		return nil, reject(RejectInvalidHandIndex, "%s has no hand card at index %d", p.Name, handIndex)
	}
	star, ok := p.Hand[handIndex].(*cards.StarCard)
	if !ok {
		return nil, reject(RejectWrongCardKind, "card at index %d is %s, not a star", handIndex, p.Hand[handIndex].Kind())
	}

	boardFull := len(p.Board) >= maxBoard
	if boardFull {
		if replaceIndex == nil {
			return nil, reject(RejectBoardFull, "%s's board is full; a replacement index is required", p.Name)
		}
		if *replaceIndex < 0 || *replaceIndex >= len(p.Board) {
			return nil, reject(RejectInvalidBoardIndex, "%s has no board star at index %d", p.Name, *replaceIndex)
		}
	}

	if boardFull {
		replaced := p.removeFromBoard(*replaceIndex)
		*discard = append(*discard, replaced)
	}
	p.removeFromHand(handIndex)
	p.Board = append(p.Board, star)
	return star, nil
}
