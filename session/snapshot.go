package session

import (
	"github.com/minaorangina/uno/protocol"
)

// Snapshot builds the read-only view of a session for one viewer.
// Before the game starts it is a waiting-room roster; afterwards it
// carries the full table state, with opponents' hands reduced to
// counts.
func (m *Manager) Snapshot(gameID, viewerID string) (*protocol.GameSnapshot, error) {
	sess := m.FindSession(gameID)
	if sess == nil {
		return nil, ErrGameNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	viewer := sess.Member(viewerID)
	if viewer == nil {
		return nil, ErrPlayerNotFound
	}

	snapshot := &protocol.GameSnapshot{
		GameID:         sess.ID,
		Status:         sess.Status.String(),
		MaxPlayers:     sess.MaxPlayers,
		CurrentPlayers: len(sess.Members),
		LastUpdate:     sess.LastUpdate,
	}

	stage := sess.Stage
	if sess.Status == Waiting || stage == nil {
		for _, member := range sess.Members {
			snapshot.Players = append(snapshot.Players, protocol.PlayerView{
				PlayerID: member.PlayerID,
				Name:     member.Name,
				Position: member.Position,
			})
		}
		return snapshot, nil
	}

	for _, member := range sess.Members {
		snapshot.Players = append(snapshot.Players, protocol.PlayerView{
			PlayerID:  member.PlayerID,
			Name:      member.Name,
			Position:  member.Position,
			CardCount: member.Player.CardCount(),
			Warned:    member.Player.Warned,
			Finished:  stage.IsFinished(member.Player),
		})
	}

	snapshot.Turn = stage.Turn
	snapshot.Reversed = stage.Reversed
	snapshot.ActiveNum = stage.Num
	snapshot.PendingDraw = stage.DrawNum
	snapshot.FieldCard = protocol.NewCardView(stage.LatestCard(), nil)

	if stage.Color != nil {
		snapshot.ActiveColor = &protocol.ColorView{Name: stage.Color.Name, Code: stage.Color.Code}
	}

	if current := sess.MemberFor(stage.CurrentPlayer()); current != nil {
		snapshot.CurrentPlayer = &protocol.PlayerRef{PlayerID: current.PlayerID, Name: current.Name}
		snapshot.IsMyTurn = current.PlayerID == viewerID
	}

	for _, card := range viewer.Player.Cards {
		canPlay := stage.CanPlay(card)
		snapshot.MyHand = append(snapshot.MyHand, protocol.NewCardView(card, &canPlay))
	}

	if drawn, ok := sess.DrawnCards[viewerID]; ok {
		canPlay := stage.CanPlay(drawn)
		snapshot.DrawnCard = protocol.NewCardView(drawn, &canPlay)
		snapshot.CanPlayDrawnCard = canPlay
	}

	return snapshot, nil
}
