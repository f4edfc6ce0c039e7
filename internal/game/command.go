package game

import "github.com/starpower/starpower-server-go/internal/game/cards"

// CommandType tags the command union dispatched to the engine.
type CommandType string

const (
	CommandPlayCard           CommandType = "PLAY_CARD"
	CommandEndTurn            CommandType = "END_TURN"
	CommandSelectStarForEvent CommandType = "SELECT_STAR_FOR_EVENT"
	CommandResolveEvent       CommandType = "RESOLVE_EVENT"
)

// Command is a single instruction to the engine. Which fields matter depends
// on Type:
//
//   - PLAY_CARD: Player, HandIndex; TargetStarIndex for power targets,
//     steal targets (opponent board) and the event competing star;
//     ReplaceStarIndex for board replacement and steal sacrifice.
//   - END_TURN: no fields.
//   - SELECT_STAR_FOR_EVENT: Player, StarIndex, Stat (empty Stat picks the
//     event's default).
//   - RESOLVE_EVENT: no fields; manual trigger, rarely needed.
type Command struct {
	Type             CommandType `json:"type"`
	Player           int         `json:"player"`
	HandIndex        int         `json:"hand_index"`
	TargetStarIndex  *int        `json:"target_star_index,omitempty"`
	ReplaceStarIndex *int        `json:"replace_star_index,omitempty"`
	StarIndex        int         `json:"star_index"`
	Stat             cards.Stat  `json:"stat,omitempty"`
}

// Result is what every dispatch returns: an explicit accepted/rejected
// signal plus the post-command snapshot. A rejected command's snapshot is
// identical to the pre-command state.
type Result struct {
	Accepted bool         `json:"accepted"`
	Reason   RejectReason `json:"reason,omitempty"`
	Detail   string       `json:"detail,omitempty"`
	Snapshot Snapshot     `json:"snapshot"`
}
