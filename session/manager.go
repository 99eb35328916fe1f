package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/minaorangina/uno/deck"
	"github.com/minaorangina/uno/game"
	"github.com/minaorangina/uno/protocol"
	uuid "github.com/satori/go.uuid"
)

const (
	minPlayers = 2
	maxPlayers = 8

	challengePenalty = 2

	eventBuffer = 64
)

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

// NewGameID constructs a short game join code
func NewGameID() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, 6)

	for i := range code {
		code[i] = letters[rand.Intn(len(letters))]
	}

	return string(code)
}

// Manager owns every live session and serializes actions against each
// one. Actions on different sessions proceed in parallel; actions on
// the same session are strictly serialized by the session's own lock,
// held for the full duration of one action and never across I/O.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	events   chan protocol.Event
}

// NewManager constructs an empty Manager
func NewManager() *Manager {
	rand.Seed(time.Now().UnixNano())
	return &Manager{
		sessions: map[string]*Session{},
		events:   make(chan protocol.Event, eventBuffer),
	}
}

// Events is the state-change feed the transport layer subscribes to
func (m *Manager) Events() <-chan protocol.Event {
	return m.events
}

// notify emits a state-change event without ever blocking a move:
// with no subscriber draining the feed, events are dropped
func (m *Manager) notify(event protocol.Event) {
	event.Timestamp = time.Now()
	select {
	case m.events <- event:
	default:
	}
}

// FindSession returns the session with the given ID, or nil
func (m *Manager) FindSession(gameID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[gameID]
}

// CreateSession opens a new game in the waiting state with the host
// already seated at position 0
func (m *Manager) CreateSession(hostName string, max int) (*Session, string, error) {
	if max < minPlayers || max > maxPlayers {
		return nil, "", ErrInvalidMaxPlayers
	}

	playerID := NewID()
	now := time.Now()
	sess := &Session{
		HostPlayerID: playerID,
		MaxPlayers:   max,
		Status:       Waiting,
		Members: []*Member{{
			PlayerID: playerID,
			Name:     hostName,
			Position: 0,
			Player:   game.NewPlayer(hostName),
		}},
		DrawnCards: map[string]*deck.Card{},
		CreatedAt:  now,
		LastUpdate: now,
	}

	// the short code space is small enough that a collision with a
	// live session is plausible, so keep drawing until the code is free
	m.mu.Lock()
	sess.ID = NewGameID()
	for m.sessions[sess.ID] != nil {
		sess.ID = NewGameID()
	}
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	return sess, playerID, nil
}

// Join seats a new player in a waiting session
func (m *Manager) Join(gameID, name string) (playerID string, position int, err error) {
	sess := m.FindSession(gameID)
	if sess == nil {
		return "", 0, ErrGameNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Status != Waiting {
		return "", 0, ErrGameAlreadyStarted
	}
	if len(sess.Members) >= sess.MaxPlayers {
		return "", 0, ErrGameFull
	}

	playerID = NewID()
	position = len(sess.Members)
	sess.Members = append(sess.Members, &Member{
		PlayerID: playerID,
		Name:     name,
		Position: position,
		Player:   game.NewPlayer(name),
	})
	sess.touch()

	m.notify(protocol.Event{
		GameID:     gameID,
		Action:     protocol.PlayerJoined,
		PlayerID:   playerID,
		PlayerName: name,
		Position:   position,
	})

	return playerID, position, nil
}

// Start moves a waiting session into play: the host builds a stage
// from every member's player and deals the opening field
func (m *Manager) Start(gameID, playerID string) error {
	sess := m.FindSession(gameID)
	if sess == nil {
		return ErrGameNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.HostPlayerID != playerID {
		return ErrNotHost
	}
	if len(sess.Members) < minPlayers {
		return ErrInsufficientPlayers
	}
	if sess.Status != Waiting {
		return ErrGameAlreadyStarted
	}

	players := make([]*game.Player, 0, len(sess.Members))
	for _, member := range sess.Members {
		players = append(players, member.Player)
	}

	stage := game.NewStage(players)
	stage.SetUpField()

	sess.Stage = stage
	sess.Status = Playing
	sess.StartedAt = time.Now()
	sess.touch()

	m.notify(protocol.Event{
		GameID: gameID,
		Action: protocol.GameStarted,
		Status: Playing.String(),
	})

	return nil
}

// PlayResult is the outcome of a successful play
type PlayResult struct {
	Card       *deck.Card
	NextPlayer *Member
}

// PlayCard plays the named card from the acting player's hand,
// applies its effects and the retroactive warning penalty, and
// advances the turn
func (m *Manager) PlayCard(gameID, playerID, cardName, chosenColor string) (*PlayResult, error) {
	sess := m.FindSession(gameID)
	if sess == nil {
		return nil, ErrGameNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	member, stage, err := sess.acting(playerID)
	if err != nil {
		return nil, err
	}
	if stage.CurrentPlayer() != member.Player {
		return nil, ErrNotYourTurn
	}
	if _, ok := sess.DrawnCards[playerID]; ok {
		return nil, ErrMustHandleDrawnCard
	}

	card := member.Player.FindCard(cardName)
	if card == nil {
		return nil, ErrCardNotFound
	}
	if !stage.CanPlay(card) {
		return nil, ErrInvalidCard
	}

	color, err := resolveColor(card, chosenColor)
	if err != nil {
		return nil, err
	}

	member.Player.RemoveCard(card)
	if color != nil {
		card.Color = color
	}

	// down to one card: the play itself counts as the call-out,
	// which still only lands half the time
	if member.Player.CardCount() == 1 && !member.Player.Warned {
		member.Player.SayWarning()
	}

	stage.PutCard(card)
	stage.ApplyWarningPenalty()
	stage.NextTurn(card)

	if stage.ShouldEnd() {
		sess.Status = Finished
	}
	sess.touch()

	m.notify(protocol.Event{
		GameID:   gameID,
		Action:   protocol.CardPlayed,
		PlayerID: playerID,
		CardName: card.Name,
		Color:    chosenColor,
		Status:   sess.Status.String(),
	})

	return &PlayResult{Card: card, NextPlayer: sess.MemberFor(stage.CurrentPlayer())}, nil
}

// DrawResult describes the outcome of a draw action
type DrawResult struct {
	Card    *deck.Card // staged card awaiting play or pass; nil on the penalty path
	CanPlay bool
	Penalty int // cards drawn when a pending draw was drained
}

// DrawCard draws for the acting player. With a pending draw the
// player either must play a chaining card (ErrCanPutCard) or drains
// the full penalty and loses the turn (ErrDrewPenaltyCards).
// Otherwise one fresh card is staged for a play-or-pass decision
// without entering the hand.
func (m *Manager) DrawCard(gameID, playerID string) (*DrawResult, error) {
	sess := m.FindSession(gameID)
	if sess == nil {
		return nil, ErrGameNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	member, stage, err := sess.acting(playerID)
	if err != nil {
		return nil, err
	}
	if stage.CurrentPlayer() != member.Player {
		return nil, ErrNotYourTurn
	}
	if _, ok := sess.DrawnCards[playerID]; ok {
		return nil, ErrAlreadyDrawn
	}

	if stage.DrawNum > 0 {
		if len(member.Player.PlayableCards(stage)) > 0 {
			return nil, ErrCanPutCard
		}

		penalty := stage.DrawNum
		for i := 0; i < penalty; i++ {
			member.Player.AddCard(stage.Draw())
		}
		stage.DrawNum = 0
		stage.NextTurn(nil)
		sess.touch()

		m.notify(protocol.Event{
			GameID:   gameID,
			Action:   protocol.PenaltyDrawn,
			PlayerID: playerID,
			Penalty:  penalty,
		})

		return &DrawResult{Penalty: penalty}, ErrDrewPenaltyCards
	}

	card := stage.Draw()
	sess.DrawnCards[playerID] = card
	sess.touch()

	m.notify(protocol.Event{
		GameID:   gameID,
		Action:   protocol.CardDrawn,
		PlayerID: playerID,
	})

	return &DrawResult{Card: card, CanPlay: stage.CanPlay(card)}, nil
}

// PlayDrawnCard plays the staged drawn card, re-checking its legality
// against the field as it stands now
func (m *Manager) PlayDrawnCard(gameID, playerID, chosenColor string) (*PlayResult, error) {
	sess := m.FindSession(gameID)
	if sess == nil {
		return nil, ErrGameNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	member, stage, err := sess.acting(playerID)
	if err != nil {
		return nil, err
	}
	if stage.CurrentPlayer() != member.Player {
		return nil, ErrNotYourTurn
	}

	card, ok := sess.DrawnCards[playerID]
	if !ok {
		return nil, ErrNoDrawnCard
	}
	if !stage.CanPlay(card) {
		return nil, ErrInvalidCard
	}

	color, err := resolveColor(card, chosenColor)
	if err != nil {
		return nil, err
	}
	if color != nil {
		card.Color = color
	}

	// the staged card never entered the hand, so an empty hand here
	// means the player is about to finish
	if member.Player.CardCount() == 0 && !member.Player.Warned {
		member.Player.SayWarning()
	}

	stage.PutCard(card)
	delete(sess.DrawnCards, playerID)
	stage.NextTurn(card)

	if stage.ShouldEnd() {
		sess.Status = Finished
	}
	sess.touch()

	m.notify(protocol.Event{
		GameID:   gameID,
		Action:   protocol.DrawnCardPlayed,
		PlayerID: playerID,
		CardName: card.Name,
		Color:    chosenColor,
		Status:   sess.Status.String(),
	})

	return &PlayResult{Card: card, NextPlayer: sess.MemberFor(stage.CurrentPlayer())}, nil
}

// PassTurn declines to play the staged drawn card: it joins the hand
// and the turn moves on
func (m *Manager) PassTurn(gameID, playerID string) error {
	sess := m.FindSession(gameID)
	if sess == nil {
		return ErrGameNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	member, stage, err := sess.acting(playerID)
	if err != nil {
		return err
	}
	if stage.CurrentPlayer() != member.Player {
		return ErrNotYourTurn
	}

	card, ok := sess.DrawnCards[playerID]
	if !ok {
		return ErrNoDrawnCard
	}

	member.Player.AddCard(card)
	delete(sess.DrawnCards, playerID)
	stage.NextTurn(nil)
	sess.touch()

	m.notify(protocol.Event{
		GameID:   gameID,
		Action:   protocol.TurnPassed,
		PlayerID: playerID,
	})

	return nil
}

// DeclareWarning is the explicit "down to one card" call. Unlike the
// implicit call during a play, declaring always lands.
func (m *Manager) DeclareWarning(gameID, playerID string) error {
	sess := m.FindSession(gameID)
	if sess == nil {
		return ErrGameNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	member, _, err := sess.acting(playerID)
	if err != nil {
		return err
	}
	if member.Player.CardCount() != 1 {
		return ErrWarningNotApplicable
	}

	member.Player.Warned = true
	sess.touch()

	m.notify(protocol.Event{
		GameID:     gameID,
		Action:     protocol.WarningDeclared,
		PlayerID:   playerID,
		PlayerName: member.Name,
	})

	return nil
}

// ChallengeWarning catches a player sitting on one card without
// having declared: the target draws two. The challenger is not
// required to be a known member, matching the table rule that anyone
// may call it out.
func (m *Manager) ChallengeWarning(gameID, challengerID, targetID string) (int, error) {
	sess := m.FindSession(gameID)
	if sess == nil {
		return 0, ErrGameNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Stage == nil {
		return 0, ErrGameNotStarted
	}

	target := sess.Member(targetID)
	if target == nil {
		return 0, ErrTargetPlayerNotFound
	}
	if target.Player.CardCount() != 1 {
		return 0, ErrTargetNotOneCard
	}
	if target.Player.Warned {
		return 0, ErrTargetAlreadyDeclared
	}

	for i := 0; i < challengePenalty; i++ {
		target.Player.AddCard(sess.Stage.Draw())
	}
	sess.touch()

	m.notify(protocol.Event{
		GameID:   gameID,
		Action:   protocol.WarningChallenged,
		PlayerID: challengerID,
		TargetID: targetID,
		Penalty:  challengePenalty,
	})

	return challengePenalty, nil
}

// resolveColor validates a wild color choice before any state is
// touched. A color on a non-wild card is ignored, as is an absent
// choice.
func resolveColor(card *deck.Card, chosenColor string) (*deck.Color, error) {
	if chosenColor == "" || !card.IsWild() {
		return nil, nil
	}
	color := deck.ColorByName(chosenColor)
	if color == nil {
		return nil, ErrInvalidColor
	}
	return color, nil
}
