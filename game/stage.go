package game

import (
	"math/rand"
	"time"

	"github.com/minaorangina/uno/deck"
)

const cardsPerHand = 7

// Stage is the turn state machine for one round: seating order,
// direction of play, the discard pile and its active card, the
// accumulated pending draw count, and the players who have already
// emptied their hands.
type Stage struct {
	Players            []*Player
	Turn               int
	CurrentPlayerIndex int
	Reversed           bool
	FieldCards         []*deck.Card
	Color              *deck.Color
	Num                int
	DrawNum            int
	FinishedPlayers    []*Player
}

// NewStage constructs a Stage for the given players
func NewStage(players []*Player) *Stage {
	return &Stage{
		Players:         players,
		Turn:            1,
		FieldCards:      []*deck.Card{},
		FinishedPlayers: []*Player{},
	}
}

// PlayablePlayers is the seating order minus finished players.
// It is recomputed on every call: numeric indices are only meaningful
// against this shrinking subsequence, so finishing a player changes
// who a given index resolves to.
func (s *Stage) PlayablePlayers() []*Player {
	players := []*Player{}
	for _, p := range s.Players {
		if !s.IsFinished(p) {
			players = append(players, p)
		}
	}
	return players
}

// IsFinished reports whether the player has emptied their hand
func (s *Stage) IsFinished(player *Player) bool {
	for _, p := range s.FinishedPlayers {
		if p == player {
			return true
		}
	}
	return false
}

// PlayerIndex maps any integer, negatives included, into the playable
// roster's index space using floored modulo
func (s *Stage) PlayerIndex(index int) int {
	count := len(s.PlayablePlayers())
	i := index % count
	if i < 0 {
		i += count
	}
	return i
}

// GetPlayer returns the playable player at a normalized index
func (s *Stage) GetPlayer(index int) *Player {
	return s.PlayablePlayers()[index]
}

// CurrentPlayer is the player whose turn it is
func (s *Stage) CurrentPlayer() *Player {
	return s.GetPlayer(s.PlayerIndex(s.CurrentPlayerIndex))
}

// PreviousPlayer is the player the retroactive warning penalty
// inspects. The offset is one position behind the stored index
// regardless of direction; evaluated before the turn advances, this
// lands on the player who acted two turns ago, not the mover.
func (s *Stage) PreviousPlayer() *Player {
	return s.GetPlayer(s.PlayerIndex(s.CurrentPlayerIndex - 1))
}

// LatestCard is the active card on top of the discard pile that new
// plays must match
func (s *Stage) LatestCard() *deck.Card {
	if len(s.FieldCards) == 0 {
		return nil
	}
	return s.FieldCards[len(s.FieldCards)-1]
}

// Draw produces a fresh card from the catalog
func (s *Stage) Draw() *deck.Card {
	return deck.Draw()
}

// Reverse flips the direction of play
func (s *Stage) Reverse() {
	s.Reversed = !s.Reversed
}

// FinishPlayer records a player whose hand became empty
func (s *Stage) FinishPlayer(player *Player) {
	s.FinishedPlayers = append(s.FinishedPlayers, player)
}

// CanPlay reports whether the card is legal against the discard top.
// While a draw penalty is pending only a special card with the same
// symbol may be chained; number cards never answer a pending draw.
func (s *Stage) CanPlay(card *deck.Card) bool {
	top := s.LatestCard()
	if top == nil {
		return false
	}

	switch card.Kind {
	case deck.SpecialKind:
		if s.DrawNum > 0 {
			return card.Symbol == top.Symbol
		}
		if card.Color == nil {
			return true
		}
		if top.Color != nil && card.Color.Eq(top.Color) {
			return true
		}
		return card.Symbol == top.Symbol
	default:
		if s.DrawNum > 0 {
			return false
		}
		if top.Color == nil {
			return true
		}
		if top.Kind == deck.NumberKind && top.Num == card.Num {
			return true
		}
		return card.Color.Eq(top.Color)
	}
}

// PutCard resolves the card's field effects and appends it to the
// discard pile. A nil card is a no-op.
func (s *Stage) PutCard(card *deck.Card) {
	if card == nil {
		return
	}
	s.resolve(card)
	s.FieldCards = append(s.FieldCards, card)
}

// resolve applies a card to the field. For a wild the caller is
// expected to have assigned the chosen color onto the instance
// beforehand; an unresolved wild leaves the active color unset.
func (s *Stage) resolve(card *deck.Card) {
	switch card.Kind {
	case deck.NumberKind:
		s.Color = card.Color
		s.Num = card.Num
	case deck.SpecialKind:
		s.Color = card.Color
		s.Num = 0
		s.DrawNum += card.DrawNum
		if card.Effect == deck.ReverseDirection {
			s.Reverse()
		}
	}
}

// advance moves the stored index by step positions in the current
// direction. The raw index is unbounded; it is normalized through
// PlayerIndex on every read.
func (s *Stage) advance(step int) {
	if s.Reversed {
		step = -step
	}
	s.CurrentPlayerIndex += step
}

// NextTurn closes out the acting player's move: the turn counter
// ticks, a newly empty hand finishes the player, then the index
// advances by the played card's step (one when no card was played).
// The zero-card check runs on the pre-advance active player, i.e. the
// one who just acted.
func (s *Stage) NextTurn(card *deck.Card) {
	s.Turn++
	current := s.CurrentPlayer()
	if current.CardCount() == 0 {
		s.FinishPlayer(current)
	}
	step := 1
	if card != nil {
		step = card.Step
	}
	s.advance(step)
}

// ApplyWarningPenalty runs the retroactive low-card check: the
// previous player draws two if they were caught on one card without
// warning, or warned while holding more than one. It runs on every
// successful play, not only right after that player's own turn.
func (s *Stage) ApplyWarningPenalty() {
	previous := s.PreviousPlayer()
	caught := previous.CardCount() == 1 && !previous.Warned
	bluffed := previous.CardCount() > 1 && previous.Warned
	if caught || bluffed {
		previous.AddCard(s.Draw())
		previous.AddCard(s.Draw())
	}
}

// SetUpField starts a fresh round: shuffled seating, seven cards for
// each player, and a number card turned over to open the pile
func (s *Stage) SetUpField() {
	rand.Seed(time.Now().UnixNano())

	s.FinishedPlayers = []*Player{}
	rand.Shuffle(len(s.Players), func(i, j int) {
		s.Players[i], s.Players[j] = s.Players[j], s.Players[i]
	})

	for _, player := range s.Players {
		for i := 0; i < cardsPerHand; i++ {
			player.AddCard(s.Draw())
		}
	}

	s.PutCard(s.drawFirstCard())
}

// drawFirstCard redraws until it produces a number card; specials,
// wilds included, are rejected as the opening card
func (s *Stage) drawFirstCard() *deck.Card {
	card := s.Draw()
	if card.Kind != deck.NumberKind {
		return s.drawFirstCard()
	}
	return card
}

// ShouldEnd reports whether exactly one player is still going
func (s *Stage) ShouldEnd() bool {
	return len(s.FinishedPlayers) == len(s.Players)-1
}

// Result names the round's winner (first to empty their hand) and
// loser (the sole player left holding cards)
func (s *Stage) Result() (winner, loser *Player) {
	return s.FinishedPlayers[0], s.PlayablePlayers()[0]
}

// commitWithSingleChance asks the current player for a card with no
// second try
func (s *Stage) commitWithSingleChance() *deck.Card {
	return s.CurrentPlayer().PutCard(s)
}

// commitWithDoubleChance asks the current player for a card, dealing
// them one fresh card and asking again if they had no legal move
func (s *Stage) commitWithDoubleChance() *deck.Card {
	if card := s.CurrentPlayer().PutCard(s); card != nil {
		return card
	}
	s.CurrentPlayer().AddCard(s.Draw())
	return s.CurrentPlayer().PutCard(s)
}

// PlayTurn advances the round by one autonomous move. A pending draw
// must be answered in kind or drained in full; otherwise the player
// gets the usual draw-and-retry chance.
func (s *Stage) PlayTurn() {
	var card *deck.Card

	if s.DrawNum > 0 {
		card = s.commitWithSingleChance()
		if card != nil {
			s.PutCard(card)
		} else {
			current := s.CurrentPlayer()
			for i := 0; i < s.DrawNum; i++ {
				current.AddCard(s.Draw())
			}
			s.DrawNum = 0
		}
	} else {
		card = s.commitWithDoubleChance()
		s.PutCard(card)
	}

	s.ApplyWarningPenalty()
	s.NextTurn(card)
}

// Play runs a full round to completion
func (s *Stage) Play() (winner, loser *Player) {
	s.SetUpField()
	for !s.ShouldEnd() {
		s.PlayTurn()
	}
	return s.Result()
}
