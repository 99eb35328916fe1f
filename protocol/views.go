package protocol

import (
	"time"

	"github.com/minaorangina/uno/deck"
)

// ColorView is the serializable form of a card color
type ColorView struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// CardView is the serializable form of a single card. CanPlay is only
// populated for the viewer's own cards.
type CardView struct {
	Name    string     `json:"name"`
	Num     *int       `json:"num,omitempty"`
	Symbol  string     `json:"symbol,omitempty"`
	Color   *ColorView `json:"color,omitempty"`
	CanPlay *bool      `json:"canPlay,omitempty"`
}

// NewCardView converts a card into its outbound form. Pass nil for
// canPlay to omit the legality flag.
func NewCardView(card *deck.Card, canPlay *bool) *CardView {
	if card == nil {
		return nil
	}

	view := &CardView{
		Name:    card.Name,
		Symbol:  string(card.Symbol),
		CanPlay: canPlay,
	}
	if card.Kind == deck.NumberKind {
		num := card.Num
		view.Num = &num
	}
	if card.Color != nil {
		view.Color = &ColorView{Name: card.Color.Name, Code: card.Color.Code}
	}
	return view
}

// PlayerRef identifies a player without exposing game state
type PlayerRef struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// PlayerView is what any participant may learn about a player:
// card count and flags, never hand contents
type PlayerView struct {
	PlayerID  string `json:"playerID"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
	CardCount int    `json:"cardCount"`
	Warned    bool   `json:"warned"`
	Finished  bool   `json:"finished"`
}

// GameSnapshot is the read-only state of a session from one viewer's
// perspective. Opponents' hands are reduced to counts; only the
// viewer's own hand and staged drawn card appear, with per-card
// legality.
type GameSnapshot struct {
	GameID           string       `json:"gameID"`
	Status           string       `json:"status"`
	MaxPlayers       int          `json:"maxPlayers"`
	CurrentPlayers   int          `json:"currentPlayers"`
	Players          []PlayerView `json:"players"`
	Turn             int          `json:"turn,omitempty"`
	CurrentPlayer    *PlayerRef   `json:"currentPlayer,omitempty"`
	IsMyTurn         bool         `json:"isMyTurn"`
	Reversed         bool         `json:"reversed"`
	ActiveColor      *ColorView   `json:"activeColor,omitempty"`
	ActiveNum        int          `json:"activeNum"`
	PendingDraw      int          `json:"pendingDraw"`
	FieldCard        *CardView    `json:"fieldCard,omitempty"`
	MyHand           []*CardView  `json:"myHand,omitempty"`
	DrawnCard        *CardView    `json:"drawnCard,omitempty"`
	CanPlayDrawnCard bool         `json:"canPlayDrawnCard,omitempty"`
	LastUpdate       time.Time    `json:"lastUpdate"`
}
