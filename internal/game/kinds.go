package game

// Kind is the closed-set category of a card. The three kinds form a single
// advantage cycle; the tables below are fixed game rules, not configuration.
type Kind string

const (
	KindMarine   Kind = "marine"
	KindRanger   Kind = "ranger"
	KindSorcerer Kind = "sorcerer"
)

// Kinds lists every valid kind, in cycle order.
var Kinds = []Kind{KindMarine, KindRanger, KindSorcerer}

// beatsTable maps each kind to the kind it beats outright:
// marine beats ranger, ranger beats sorcerer, sorcerer beats marine.
var beatsTable = map[Kind]Kind{
	KindMarine:   KindRanger,
	KindRanger:   KindSorcerer,
	KindSorcerer: KindMarine,
}

// primaryAttribute maps each kind to the attribute used for same-kind
// tie-breaking.
var primaryAttribute = map[Kind]string{
	KindMarine:   "strength",
	KindRanger:   "dexterity",
	KindSorcerer: "intelligence",
}

// ValidKind reports whether k is one of the three playable kinds.
func ValidKind(k Kind) bool {
	_, ok := beatsTable[k]
	return ok
}

// Beats reports whether kind a beats kind b in the advantage cycle.
// A kind never beats itself.
func Beats(a, b Kind) bool { return beatsTable[a] == b }

// PrimaryAttribute returns the name of the attribute a kind uses for
// same-kind comparisons.
func PrimaryAttribute(k Kind) string { return primaryAttribute[k] }

// PrimaryValue returns the card's value on its kind's primary attribute.
func (c *Card) PrimaryValue() int {
	switch primaryAttribute[c.Kind] {
	case "strength":
		return c.Strength
	case "dexterity":
		return c.Dexterity
	case "intelligence":
		return c.Intelligence
	}
	return 0
}

// AttributeTotal sums the card's three attributes. The total is stored in
// the battle result payload for display; it never decides a winner.
func (c *Card) AttributeTotal() int {
	return c.Strength + c.Dexterity + c.Intelligence
}
