package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorEquality(t *testing.T) {
	t.Run("colors with the same name are equal", func(t *testing.T) {
		a := &Color{Name: "red", Code: "#ff0000"}
		b := &Color{Name: "red", Code: "#ee0000"}

		// the display code is ignored on purpose
		assert.True(t, a.Eq(b))
		assert.True(t, b.Eq(a))
	})

	t.Run("colors with different names are not equal", func(t *testing.T) {
		a := &Color{Name: "red", Code: "#ff0000"}
		b := &Color{Name: "blue", Code: "#ff0000"}

		assert.False(t, a.Eq(b))
	})

	t.Run("nothing equals a missing color", func(t *testing.T) {
		a := &Color{Name: "red"}
		var none *Color

		assert.False(t, a.Eq(nil))
		assert.False(t, none.Eq(a))
		assert.False(t, none.Eq(none))
	})
}

func TestNewNumberCard(t *testing.T) {
	red := ColorByName("red")
	card := NewNumberCard(5, red)

	assert.Equal(t, NumberKind, card.Kind)
	assert.Equal(t, "red5", card.Name)
	assert.Equal(t, 5, card.Num)
	assert.Equal(t, red, card.Color)
	assert.Equal(t, 1, card.Step)
	assert.Equal(t, 0, card.DrawNum)
	assert.False(t, card.IsWild())
}

func TestNewSpecialCard(t *testing.T) {
	blue := ColorByName("blue")

	t.Run("skip consumes two turn positions", func(t *testing.T) {
		card := NewSpecialCard(Skip, blue)

		assert.Equal(t, "blueskip", card.Name)
		assert.Equal(t, 2, card.Step)
		assert.Equal(t, 0, card.DrawNum)
		assert.Equal(t, NoEffect, card.Effect)
	})

	t.Run("reverse consumes two turn positions and flips direction", func(t *testing.T) {
		card := NewSpecialCard(Reverse, blue)

		assert.Equal(t, 2, card.Step)
		assert.Equal(t, 0, card.DrawNum)
		assert.Equal(t, ReverseDirection, card.Effect)
	})

	t.Run("draw2 carries a two-card penalty", func(t *testing.T) {
		card := NewSpecialCard(DrawTwo, blue)

		assert.Equal(t, "bluedraw2", card.Name)
		assert.Equal(t, 1, card.Step)
		assert.Equal(t, 2, card.DrawNum)
	})

	t.Run("wild has no color", func(t *testing.T) {
		card := NewSpecialCard(Wild, nil)

		assert.Equal(t, "wild", card.Name)
		assert.Equal(t, 1, card.Step)
		assert.Equal(t, 0, card.DrawNum)
		assert.True(t, card.IsWild())
	})

	t.Run("draw4 has no color and a four-card penalty", func(t *testing.T) {
		card := NewSpecialCard(DrawFour, nil)

		assert.Equal(t, "draw4", card.Name)
		assert.Equal(t, 1, card.Step)
		assert.Equal(t, 4, card.DrawNum)
		assert.True(t, card.IsWild())
	})
}
