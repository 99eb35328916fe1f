package deck

import "fmt"

// Symbol identifies a special card's face
type Symbol string

const (
	Skip     Symbol = "skip"
	Reverse  Symbol = "reverse"
	DrawTwo  Symbol = "draw2"
	Wild     Symbol = "wild"
	DrawFour Symbol = "draw4"
)

// Effect is the field effect a special card applies when it resolves.
// Cards carry one of a closed set of effects rather than callbacks;
// the stage dispatches on the value.
type Effect int

const (
	NoEffect Effect = iota
	ReverseDirection
)

// Kind discriminates the two card variants
type Kind int

const (
	NumberKind Kind = iota
	SpecialKind
)

// Card is a single card instance. A card belongs to exactly one hand
// or pile at a time and is mutable: playing a wild assigns the chosen
// color onto the instance before it resolves.
type Card struct {
	Kind    Kind
	Name    string
	Num     int    // number cards only
	Symbol  Symbol // special cards only
	Color   *Color // nil marks the wild family
	Step    int    // turn positions consumed when the card resolves
	DrawNum int    // cards added to the pending draw count
	Effect  Effect
}

// NewNumberCard creates a number card instance
func NewNumberCard(num int, color *Color) *Card {
	return &Card{
		Kind:  NumberKind,
		Name:  fmt.Sprintf("%s%d", color.Name, num),
		Num:   num,
		Color: color,
		Step:  1,
	}
}

// NewSpecialCard creates a special card instance. Skip and reverse
// consume two turn positions; every other card consumes one.
func NewSpecialCard(symbol Symbol, color *Color) *Card {
	card := &Card{
		Kind:   SpecialKind,
		Symbol: symbol,
		Color:  color,
		Step:   1,
	}

	switch symbol {
	case Skip:
		card.Step = 2
	case Reverse:
		card.Step = 2
		card.Effect = ReverseDirection
	case DrawTwo:
		card.DrawNum = 2
	case DrawFour:
		card.DrawNum = 4
	}

	if color == nil {
		card.Name = string(symbol)
	} else {
		card.Name = color.Name + string(symbol)
	}

	return card
}

// IsWild reports whether the card belongs to the wild family, playable
// regardless of the active color
func (c *Card) IsWild() bool {
	return c.Color == nil
}

func (c *Card) String() string {
	return c.Name
}
