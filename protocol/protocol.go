package protocol

import "time"

// Action names a state change emitted by the session store.
// The transport layer forwards these to connected clients verbatim.
const (
	PlayerJoined      = "player_joined"
	GameStarted       = "game_started"
	CardPlayed        = "card_played"
	CardDrawn         = "card_drawn"
	DrawnCardPlayed   = "drawn_card_played"
	TurnPassed        = "turn_passed"
	PenaltyDrawn      = "penalty_drawn"
	WarningDeclared   = "warning_declared"
	WarningChallenged = "warning_challenged"
)

// Event is a state-change notification. Not every field is set for
// every action.
type Event struct {
	GameID     string    `json:"gameID"`
	Action     string    `json:"action"`
	PlayerID   string    `json:"playerID,omitempty"`
	PlayerName string    `json:"playerName,omitempty"`
	Position   int       `json:"position,omitempty"`
	CardName   string    `json:"cardName,omitempty"`
	Color      string    `json:"color,omitempty"`
	Status     string    `json:"status,omitempty"`
	TargetID   string    `json:"targetID,omitempty"`
	Penalty    int       `json:"penalty,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
