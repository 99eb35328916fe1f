package game

import (
	"math/rand"

	"github.com/minaorangina/uno/deck"
)

// Player owns a hand of cards and the low-card warning state
type Player struct {
	Name   string
	Cards  []*deck.Card
	Warned bool
}

// NewPlayer constructs a Player with an empty hand
func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

// CardCount returns the number of cards in the hand
func (p *Player) CardCount() int {
	return len(p.Cards)
}

// AddCard puts a card into the hand. Receiving a card always clears
// the low-card warning.
func (p *Player) AddCard(card *deck.Card) {
	p.Cards = append(p.Cards, card)
	p.Warned = false
}

// FindCard returns the first hand card with the given name, or nil
func (p *Player) FindCard(name string) *deck.Card {
	for _, card := range p.Cards {
		if card.Name == name {
			return card
		}
	}
	return nil
}

// RemoveCard takes the card instance out of the hand
func (p *Player) RemoveCard(card *deck.Card) {
	cards := []*deck.Card{}
	for _, c := range p.Cards {
		if c != card {
			cards = append(cards, c)
		}
	}
	p.Cards = cards
}

// PlayableCards returns the hand cards that are legal against the
// current field
func (p *Player) PlayableCards(s *Stage) []*deck.Card {
	cards := []*deck.Card{}
	for _, card := range p.Cards {
		if s.CanPlay(card) {
			cards = append(cards, card)
		}
	}
	return cards
}

// SayWarning is the player calling out their last card. The call only
// lands half the time, modelling a player forgetting to shout it.
func (p *Player) SayWarning() {
	p.Warned = rand.Float64() < 0.5
}

// SelectCard picks a random playable card, calling the warning when
// down to two cards. Used by the autonomous round simulation.
func (p *Player) SelectCard(s *Stage) *deck.Card {
	cards := p.PlayableCards(s)
	if len(cards) == 0 {
		return nil
	}
	if len(p.Cards) == 2 && !p.Warned {
		p.SayWarning()
	}
	return cards[rand.Intn(len(cards))]
}

// SelectColor picks a random color for a wild card
func (p *Player) SelectColor() *deck.Color {
	return deck.Colors[rand.Intn(len(deck.Colors))]
}

// PutCard removes and returns a playable card, or nil when the player
// has no legal move
func (p *Player) PutCard(s *Stage) *deck.Card {
	card := p.SelectCard(s)
	if card == nil {
		return nil
	}
	p.RemoveCard(card)
	return card
}
