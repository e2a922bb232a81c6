package untis

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RecognizeType maps the free-text description of a substitution to a
// record type. Used for desc-type columns where the table has no separate
// type column and the kind of change is embedded in the running text.
// Returns an empty string when nothing matches.
func RecognizeType(text string) string {
	switch {
	case strings.Contains(text, "f.a.") || strings.Contains(text, "fällt aus") ||
		strings.Contains(text, "faellt aus") || strings.Contains(text, "entfällt"):
		return "Entfall"
	case equalsOneOf(text, "Raumänderung", "Klasse frei", "Unterrichtstausch", "Freistunde",
		"Raumverlegung", "Selbstlernen", "Zusammenlegung", "HA"):
		return text
	case strings.Contains(text, "verschoben"):
		return "Verlegung"
	case strings.Contains(text, "geänderter Raum"):
		return "Raumänderung"
	case strings.Contains(text, "frei"):
		return "Entfall"
	case strings.Contains(text, "Aufgaben"):
		return "Aufgaben"
	default:
		return ""
	}
}

func equalsOneOf(text string, values ...string) bool {
	for _, v := range values {
		if text == v {
			return true
		}
	}
	return false
}

// equalsOrUnset treats empty strings as wildcards when comparing an old
// value against a new one.
func equalsOrUnset(a, b string) bool {
	return a == "" || b == "" || a == b
}

// inferType fills in the record type for flat-layout rows that did not
// set one explicitly. A struck-through row whose subject and teacher did
// not effectively change, or a row where the lesson vanished without
// replacement data, is a cancellation; everything else is a generic
// substitution. Grouped layouts never call this, they default straight to
// "Vertretung".
func (p *Parser) inferType(v *Substitution, row *goquery.Selection) {
	cancelled := row.Find("strike").Length() > 0 &&
		equalsOrUnset(v.Subject, v.PreviousSubject) &&
		equalsOrUnset(v.Teacher, v.PreviousTeacher)
	vanished := v.Subject == "" && v.Room == "" && v.Teacher == "" && v.PreviousSubject != ""
	if cancelled || vanished {
		v.Type = "Entfall"
	} else {
		v.Type = "Vertretung"
	}
	v.Color = p.colors.Color(v.Type)
}
