package requires

import "github.com/jonathan/mod-roster/internal/fields"

// DiplomacyStatus is the relationship named by a diplomacy predicate.
type DiplomacyStatus int

const (
	DiplomacyUnknown DiplomacyStatus = iota
	DiplomacyAllied
	DiplomacyProtector
	DiplomacyProtectorate
	DiplomacyNeutral
	DiplomacySuspicious
	DiplomacyHostile
	DiplomacyWar
)

var diplomacyNames = map[DiplomacyStatus]string{
	DiplomacyUnknown:      "unknown",
	DiplomacyAllied:       "allied",
	DiplomacyProtector:    "protector",
	DiplomacyProtectorate: "protectorate",
	DiplomacyNeutral:      "neutral",
	DiplomacySuspicious:   "suspicious",
	DiplomacyHostile:      "hostile",
	DiplomacyWar:          "war",
}

func (d DiplomacyStatus) String() string {
	return diplomacyNames[d]
}

var diplomacyVocab = fields.NewVocabulary(DiplomacyUnknown, map[string]DiplomacyStatus{
	"allied":       DiplomacyAllied,
	"protector":    DiplomacyProtector,
	"protectorate": DiplomacyProtectorate,
	"neutral":      DiplomacyNeutral,
	"suspicious":   DiplomacySuspicious,
	"hostile":      DiplomacyHostile,
	"war":          DiplomacyWar,
	"at_war":       DiplomacyWar,
})

// Comparison is the operator of a numeric predicate.
type Comparison int

const (
	CompareUnknown Comparison = iota
	CompareLess
	CompareLessEqual
	CompareEqual
	CompareGreaterEqual
	CompareGreater
	CompareNotEqual
)

var comparisonNames = map[Comparison]string{
	CompareUnknown:      "?",
	CompareLess:         "<",
	CompareLessEqual:    "<=",
	CompareEqual:        "=",
	CompareGreaterEqual: ">=",
	CompareGreater:      ">",
	CompareNotEqual:     "!=",
}

func (c Comparison) String() string {
	return comparisonNames[c]
}

// Holds reports whether "a c b" is true. CompareUnknown never holds.
func (c Comparison) Holds(a, b uint32) bool {
	switch c {
	case CompareLess:
		return a < b
	case CompareLessEqual:
		return a <= b
	case CompareEqual:
		return a == b
	case CompareGreaterEqual:
		return a >= b
	case CompareGreater:
		return a > b
	case CompareNotEqual:
		return a != b
	}
	return false
}

var comparisonVocab = fields.NewVocabulary(CompareUnknown, map[string]Comparison{
	"<":  CompareLess,
	"<=": CompareLessEqual,
	"=":  CompareEqual,
	"==": CompareEqual,
	">=": CompareGreaterEqual,
	">":  CompareGreater,
	"!=": CompareNotEqual,
	"<>": CompareNotEqual,
})
