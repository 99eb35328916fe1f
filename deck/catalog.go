package deck

import "math/rand"

const (
	// MinNum and MaxNum bound the face value of a number card
	MinNum = 0
	MaxNum = 9
)

// Colors is the fixed set of playable colors, immutable for the
// process lifetime
var Colors = []*Color{
	{Name: "red", Code: "#ff0000"},
	{Name: "green", Code: "#00ff00"},
	{Name: "blue", Code: "#0000ff"},
	{Name: "yellow", Code: "#ffff00"},
}

// ColorByName resolves one of the four known colors, or nil
func ColorByName(name string) *Color {
	for _, color := range Colors {
		if color.Name == name {
			return color
		}
	}
	return nil
}

// Creator produces a brand-new instance of one conceptual card
type Creator func() *Card

// Creators is the full catalog: forty number cards, a skip, a reverse
// and a draw-two per color, plus the two wilds.
var Creators = newCreators()

func newCreators() []Creator {
	creators := []Creator{}

	for _, color := range Colors {
		color := color
		for num := MinNum; num <= MaxNum; num++ {
			num := num
			creators = append(creators, func() *Card { return NewNumberCard(num, color) })
		}
	}

	for _, symbol := range []Symbol{Skip, Reverse, DrawTwo} {
		symbol := symbol
		for _, color := range Colors {
			color := color
			creators = append(creators, func() *Card { return NewSpecialCard(symbol, color) })
		}
	}

	creators = append(creators,
		func() *Card { return NewSpecialCard(Wild, nil) },
		func() *Card { return NewSpecialCard(DrawFour, nil) },
	)

	return creators
}

// Draw picks one creator uniformly at random, with replacement, and
// invokes it. The catalog never depletes: duplicates of the same
// conceptual card can coexist and no card ever leaves circulation.
func Draw() *Card {
	return Creators[rand.Intn(len(Creators))]()
}
