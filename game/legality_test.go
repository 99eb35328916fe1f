package game

import (
	"testing"

	"github.com/minaorangina/uno/deck"
	utils "github.com/minaorangina/uno/internal"
)

var (
	red    = deck.ColorByName("red")
	green  = deck.ColorByName("green")
	blue   = deck.ColorByName("blue")
	yellow = deck.ColorByName("yellow")
)

// stageWithTop builds a two-player stage whose discard pile holds the
// given card, already resolved
func stageWithTop(top *deck.Card) *Stage {
	s := NewStage([]*Player{NewPlayer("a"), NewPlayer("b")})
	s.PutCard(top)
	return s
}

func TestCanPlayNumberCard(t *testing.T) {
	t.Run("matches on number", func(t *testing.T) {
		s := stageWithTop(deck.NewNumberCard(3, red))
		utils.AssertTrue(t, s.CanPlay(deck.NewNumberCard(3, blue)))
	})

	t.Run("matches on color", func(t *testing.T) {
		s := stageWithTop(deck.NewNumberCard(3, red))
		utils.AssertTrue(t, s.CanPlay(deck.NewNumberCard(7, red)))
	})

	t.Run("rejects a card matching neither", func(t *testing.T) {
		s := stageWithTop(deck.NewNumberCard(3, red))
		utils.AssertTrue(t, !s.CanPlay(deck.NewNumberCard(7, blue)))
	})

	t.Run("never answers a pending draw", func(t *testing.T) {
		s := stageWithTop(deck.NewSpecialCard(deck.DrawTwo, red))
		utils.AssertEqual(t, s.DrawNum, 2)

		// even a color match is rejected while a draw is pending
		utils.AssertTrue(t, !s.CanPlay(deck.NewNumberCard(5, red)))
	})

	t.Run("anything goes when the top card has no color", func(t *testing.T) {
		// a wild played without a chosen color leaves the field
		// colorless
		s := stageWithTop(deck.NewSpecialCard(deck.Wild, nil))
		utils.AssertTrue(t, s.CanPlay(deck.NewNumberCard(9, yellow)))
	})

	t.Run("a zero does not match a special's zero value", func(t *testing.T) {
		s := stageWithTop(deck.NewSpecialCard(deck.Skip, red))
		utils.AssertTrue(t, !s.CanPlay(deck.NewNumberCard(0, blue)))
	})
}

func TestCanPlaySpecialCard(t *testing.T) {
	t.Run("wild family is always legal without a pending draw", func(t *testing.T) {
		tops := []*deck.Card{
			deck.NewNumberCard(3, red),
			deck.NewSpecialCard(deck.Skip, green),
			deck.NewSpecialCard(deck.Reverse, yellow),
		}
		for _, top := range tops {
			s := stageWithTop(top)
			utils.AssertTrue(t, s.CanPlay(deck.NewSpecialCard(deck.Wild, nil)))
			utils.AssertTrue(t, s.CanPlay(deck.NewSpecialCard(deck.DrawFour, nil)))
		}
	})

	t.Run("colored special matches on color", func(t *testing.T) {
		s := stageWithTop(deck.NewNumberCard(3, red))
		utils.AssertTrue(t, s.CanPlay(deck.NewSpecialCard(deck.Skip, red)))
		utils.AssertTrue(t, !s.CanPlay(deck.NewSpecialCard(deck.Skip, blue)))
	})

	t.Run("colored special matches on symbol", func(t *testing.T) {
		s := stageWithTop(deck.NewSpecialCard(deck.Skip, red))
		utils.AssertTrue(t, s.CanPlay(deck.NewSpecialCard(deck.Skip, blue)))
	})

	t.Run("only a matching symbol answers a pending draw", func(t *testing.T) {
		s := stageWithTop(deck.NewSpecialCard(deck.DrawTwo, blue))
		utils.AssertEqual(t, s.DrawNum, 2)

		utils.AssertTrue(t, s.CanPlay(deck.NewSpecialCard(deck.DrawTwo, red)))
		utils.AssertTrue(t, !s.CanPlay(deck.NewSpecialCard(deck.DrawFour, nil)))
		utils.AssertTrue(t, !s.CanPlay(deck.NewSpecialCard(deck.Wild, nil)))
		utils.AssertTrue(t, !s.CanPlay(deck.NewSpecialCard(deck.Skip, blue)))
	})
}

func TestResolution(t *testing.T) {
	t.Run("number card sets the active color and number", func(t *testing.T) {
		s := stageWithTop(deck.NewNumberCard(3, red))
		s.PutCard(deck.NewNumberCard(7, red))

		utils.AssertEqual(t, s.Color, red)
		utils.AssertEqual(t, s.Num, 7)
		utils.AssertEqual(t, s.LatestCard().Name, "red7")
	})

	t.Run("chained draw cards accumulate and drain in full", func(t *testing.T) {
		s := stageWithTop(deck.NewNumberCard(3, red))
		s.PutCard(deck.NewSpecialCard(deck.DrawTwo, red))
		utils.AssertEqual(t, s.DrawNum, 2)

		s.PutCard(deck.NewSpecialCard(deck.DrawFour, nil))
		utils.AssertEqual(t, s.DrawNum, 6)

		s.DrawNum = 0
		utils.AssertEqual(t, s.DrawNum, 0)
	})

	t.Run("reverse flips the direction", func(t *testing.T) {
		s := stageWithTop(deck.NewNumberCard(3, red))
		utils.AssertTrue(t, !s.Reversed)

		s.PutCard(deck.NewSpecialCard(deck.Reverse, red))
		utils.AssertTrue(t, s.Reversed)

		s.PutCard(deck.NewSpecialCard(deck.Reverse, red))
		utils.AssertTrue(t, !s.Reversed)
	})

	t.Run("a wild with a chosen color recolors the field", func(t *testing.T) {
		s := stageWithTop(deck.NewNumberCard(3, red))

		wild := deck.NewSpecialCard(deck.Wild, nil)
		wild.Color = blue
		s.PutCard(wild)

		utils.AssertEqual(t, s.Color, blue)
		utils.AssertEqual(t, s.Num, 0)
	})

	t.Run("an unresolved wild leaves the field colorless", func(t *testing.T) {
		s := stageWithTop(deck.NewNumberCard(3, red))
		s.PutCard(deck.NewSpecialCard(deck.Wild, nil))

		utils.AssertTrue(t, s.Color == nil)
	})

	t.Run("putting no card is a no-op", func(t *testing.T) {
		s := stageWithTop(deck.NewNumberCard(3, red))
		s.PutCard(nil)

		utils.AssertEqual(t, len(s.FieldCards), 1)
	})
}
