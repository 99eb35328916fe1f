package session

import (
	"sync"
	"time"

	"github.com/minaorangina/uno/deck"
	"github.com/minaorangina/uno/game"
)

// Status is the lifecycle state of a session
type Status int

const (
	Waiting Status = iota
	Playing
	Finished
)

var statusNames = []string{
	"waiting",
	"playing",
	"finished",
}

func (s Status) String() string {
	return statusNames[s]
}

// Member ties an external player ID to the player's in-game state
type Member struct {
	PlayerID string
	Name     string
	Position int
	Player   *game.Player
}

// Session is one joinable game: a bounded member list plus, once
// started, the stage the members play on. DrawnCards holds a card a
// member has drawn on their turn but not yet played or passed; such a
// card belongs to neither the hand nor the pile, so the stage cannot
// represent it.
type Session struct {
	mu sync.Mutex

	ID           string
	HostPlayerID string
	MaxPlayers   int
	Status       Status
	Members      []*Member
	Stage        *game.Stage
	DrawnCards   map[string]*deck.Card

	CreatedAt  time.Time
	StartedAt  time.Time
	LastUpdate time.Time
}

// Member finds a member by external player ID, or nil
func (s *Session) Member(playerID string) *Member {
	for _, m := range s.Members {
		if m.PlayerID == playerID {
			return m
		}
	}
	return nil
}

// MemberFor finds the member owning the given player, or nil
func (s *Session) MemberFor(player *game.Player) *Member {
	for _, m := range s.Members {
		if m.Player == player {
			return m
		}
	}
	return nil
}

// acting resolves the in-game member for playerID. The stage check
// comes first: an unstarted game fails before an unknown player does.
func (s *Session) acting(playerID string) (*Member, *game.Stage, error) {
	if s.Stage == nil {
		return nil, nil, ErrGameNotStarted
	}
	member := s.Member(playerID)
	if member == nil {
		return nil, nil, ErrPlayerNotFound
	}
	return member, s.Stage, nil
}

func (s *Session) touch() {
	s.LastUpdate = time.Now()
}
