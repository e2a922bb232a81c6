package untis

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// RosterFunc supplies the ordered list of all class names a school
// recognizes. It may return ErrRosterUnavailable (or any other error) when
// the roster cannot be loaded; class expansion then yields no classes
// instead of failing the parse.
type RosterFunc func() ([]string, error)

var (
	classRangeRe  = regexp.MustCompile(`^(\d+) ?- ?(\d+)$`)
	classSingleRe = regexp.MustCompile(`^(\d+)$`)
	gradePrefixRe = regexp.MustCompile(`^(\d+)`)
)

// resolveClasses expands a raw class designator from the table into the
// concrete class names it stands for. Modes, in order: numeric grade
// range ("5-7"), single grade ("5"), comma-separated list, and as a last
// resort a fuzzy match against the roster for schedules that concatenate
// class names without separators ("5abcde").
func (p *Parser) resolveClasses(text string) []string {
	if m := classRangeRe.FindStringSubmatch(text); m != nil {
		min, _ := strconv.Atoi(m[1])
		max, _ := strconv.Atoi(m[2])
		return p.rosterClasses(func(grade int) bool {
			return min <= grade && grade <= max
		})
	}
	if m := classSingleRe.FindStringSubmatch(text); m != nil {
		grade, _ := strconv.Atoi(m[1])
		return p.rosterClasses(func(g int) bool {
			return g == grade
		})
	}
	if p.classesSeparated {
		return strings.Split(text, ", ")
	}
	return p.fuzzyClasses(text)
}

// rosterClasses returns all roster entries whose leading numeric grade
// prefix satisfies the given predicate.
func (p *Parser) rosterClasses(match func(grade int) bool) []string {
	var classes []string
	for _, class := range p.allClasses() {
		m := gradePrefixRe.FindStringSubmatch(class)
		if m == nil {
			continue
		}
		grade, _ := strconv.Atoi(m[1])
		if match(grade) {
			classes = append(classes, class)
		}
	}
	return classes
}

// fuzzyClasses matches the designator against a per-character wildcard
// pattern generated from each roster entry. This is a heuristic, not a
// parser: "5abcde" matches the patterns built from "5a" through "5e".
func (p *Parser) fuzzyClasses(text string) []string {
	var classes []string
	for _, class := range p.allClasses() {
		var pattern strings.Builder
		pattern.WriteString("^")
		for _, ch := range class {
			pattern.WriteString(regexp.QuoteMeta(string(ch)))
			pattern.WriteString(".*")
		}
		pattern.WriteString("$")
		re, err := regexp.Compile(pattern.String())
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			classes = append(classes, class)
		}
	}
	return classes
}

func (p *Parser) allClasses() []string {
	if p.roster == nil {
		return nil
	}
	classes, err := p.roster()
	if err != nil {
		log.Printf("untis: class roster unavailable: %v", err)
		return nil
	}
	return classes
}

// validClass reports whether a resolved class name may end up on a
// record. The empty string and the placeholder class "-----" are always
// excluded, in addition to the configured exclusion set.
func (p *Parser) validClass(class string) bool {
	return !p.excluded[class]
}

// className applies the optional class rewrite pattern to a raw class
// designator. Parentheses are always stripped. If the pattern does not
// match, the class collapses to an empty string.
func (p *Parser) className(text string) string {
	text = strings.NewReplacer("(", "", ")", "").Replace(text)
	if p.classRegex == nil {
		return text
	}
	m := p.classRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}
