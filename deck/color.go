package deck

// Color is one of the playable card colors. Code is the display hex
// code; equality ignores it.
type Color struct {
	Name string
	Code string
}

// Eq reports whether both colors share a name. A missing color equals
// nothing, itself included.
func (c *Color) Eq(other *Color) bool {
	if c == nil || other == nil {
		return false
	}
	return c.Name == other.Name
}

func (c *Color) String() string {
	if c == nil {
		return "none"
	}
	return c.Name
}
