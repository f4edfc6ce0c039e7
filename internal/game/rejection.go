package game

import "fmt"

// RejectReason is the machine-readable code attached to every rejected
// command. A rejected command never mutates state.
type RejectReason string

const (
	RejectGameOver           RejectReason = "game_over"
	RejectUnknownCommand     RejectReason = "unknown_command"
	RejectInvalidPlayer      RejectReason = "invalid_player"
	RejectNotYourTurn        RejectReason = "not_your_turn"
	RejectInvalidHandIndex   RejectReason = "invalid_hand_index"
	RejectWrongCardKind      RejectReason = "wrong_card_kind"
	RejectLimitReached       RejectReason = "limit_reached"
	RejectBoardFull          RejectReason = "board_full"
	RejectInvalidBoardIndex  RejectReason = "invalid_board_index"
	RejectMissingTarget      RejectReason = "missing_target"
	RejectNoBoardStar        RejectReason = "no_board_star"
	RejectOpponentBoardEmpty RejectReason = "opponent_board_empty"
	RejectEventAlreadyActive RejectReason = "event_already_active"
	RejectNoActiveEvent      RejectReason = "no_active_event"
	RejectStarExhausted      RejectReason = "star_exhausted"
	RejectInvalidStat        RejectReason = "invalid_stat"
	RejectEventOwnerSelect   RejectReason = "event_owner_cannot_select"
)

// Rejection is the error type for rule violations. It carries a stable code
// for callers and a human-readable detail for logs.
type Rejection struct {
	Code   RejectReason
	Detail string
}

func (r *Rejection) Error() string {
	if r.Detail == "" {
		return string(r.Code)
	}
	return fmt.Sprintf("%s: %s", r.Code, r.Detail)
}

func reject(code RejectReason, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Detail: fmt.Sprintf(format, args...)}
}
