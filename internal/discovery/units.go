package discovery

// Unit is a normalized unit of measurement. Canonical is the spelling used
// for device-class lookup; Display is the spelling emitted in descriptors.
// Both are empty when the source declared no unit at all.
type Unit struct {
	Canonical string
	Display   string
}

// None reports whether the unit is absent.
func (u Unit) None() bool {
	return u.Canonical == "" && u.Display == ""
}

// unitSynonyms fixes the known misspellings and localisms in the legacy
// unit vocabulary. The volumetric-flow unit appears in three spellings;
// all collapse onto an ASCII canonical form with the superscript glyph
// kept for display. "uur" is Dutch for hour. A literal "-" marks "no unit".
var unitSynonyms = map[string]Unit{
	"M3/h": {Canonical: "m3/h", Display: "m³/h"},
	"m3/h": {Canonical: "m3/h", Display: "m³/h"},
	"m³/h": {Canonical: "m3/h", Display: "m³/h"},
	"uur":  {Canonical: "h", Display: "h"},
	"-":    {},
	"":     {},
}

// NormalizeUnit maps a raw unit string from the legacy export to its
// normalized form. Units with no synonym rule pass through unchanged, with
// identical canonical and display spellings. Normalization is idempotent:
// every canonical spelling maps to itself.
func NormalizeUnit(raw string) Unit {
	if unit, ok := unitSynonyms[raw]; ok {
		return unit
	}
	return Unit{Canonical: raw, Display: raw}
}
