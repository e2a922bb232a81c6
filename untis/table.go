package untis

import (
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// ParserOptions configure a table parser for one school. Columns is
// required; ClassesSeparated should normally be true (comma-separated
// class lists), setting it to false enables the fuzzy roster matching for
// schedules that concatenate class names.
type ParserOptions struct {
	Columns            []ColumnType
	ClassInExtraLine   bool
	ClassesSeparated   bool
	ExcludeClasses     []string
	ClassRegex         string
	LastChangeLeft     bool
	LastChangeSelector string
	Roster             RosterFunc
	Colors             *ColorProvider
}

// Parser turns substitution tables of one school into schedule records,
// driven entirely by the declarative column schema and behavior flags. It
// holds no per-parse state and can be reused for every table of a school.
type Parser struct {
	columns            []ColumnType
	classInExtraLine   bool
	classesSeparated   bool
	excluded           map[string]bool
	classRegex         *regexp.Regexp
	lastChangeLeft     bool
	lastChangeSelector string
	roster             RosterFunc
	colors             *ColorProvider
}

// NewParser validates the options and builds a parser.
func NewParser(opts ParserOptions) (*Parser, error) {
	if len(opts.Columns) == 0 {
		return nil, &ConfigError{Reason: "columns must not be empty"}
	}
	for _, c := range opts.Columns {
		if !knownColumns[c] {
			return nil, &ConfigError{Reason: fmt.Sprintf("unknown column type: %q", c)}
		}
	}
	excluded := map[string]bool{"": true, "-----": true}
	for _, c := range opts.ExcludeClasses {
		excluded[c] = true
	}
	var classRegex *regexp.Regexp
	if opts.ClassRegex != "" {
		re, err := regexp.Compile(opts.ClassRegex)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("invalid classRegex: %v", err)}
		}
		classRegex = re
	}
	colors := opts.Colors
	if colors == nil {
		colors = NewColorProvider(nil)
	}
	return &Parser{
		columns:            opts.Columns,
		classInExtraLine:   opts.ClassInExtraLine,
		classesSeparated:   opts.ClassesSeparated,
		excluded:           excluded,
		classRegex:         classRegex,
		lastChangeLeft:     opts.LastChangeLeft,
		lastChangeSelector: opts.LastChangeSelector,
		roster:             opts.Roster,
		colors:             colors,
	}, nil
}

// ParseTable parses one substitution table into the given day.
func (p *Parser) ParseTable(table *goquery.Selection, day *ScheduleDay) error {
	return p.ParseTableForClass(table, day, "")
}

// ParseTableForClass parses a substitution table that is already scoped
// to a single class (per-class schedule pages). defaultClass is used for
// rows without a class column.
func (p *Parser) ParseTableForClass(table *goquery.Selection, day *ScheduleDay, defaultClass string) error {
	if p.classInExtraLine {
		return p.parseGrouped(table, day)
	}
	return p.parseFlat(table, day, defaultClass)
}

// parseFlat handles the default layout: one row per record, the class
// (if any) in its own column.
func (p *Parser) parseFlat(table *goquery.Selection, day *ScheduleDay, defaultClass string) error {
	hasType := false
	for _, c := range p.columns {
		if c == ColType {
			hasType = true
		}
	}

	skip := 0
	for _, row := range flatRows(table) {
		if skip > 0 {
			skip--
			continue
		}

		v := &Substitution{}
		classText := defaultClass
		var rowErr error
		i := 0
		row.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			text := cellText(cell)
			if isEmptyCell(text) {
				i++
				return true
			}
			if i >= len(p.columns) {
				rowErr = &ConfigError{Reason: fmt.Sprintf(
					"row has more columns than the schema (%d)", len(p.columns))}
				return false
			}

			merged, colSkip := mergeContinuation(row, i, text)
			if colSkip > skip {
				skip = colSkip
			}

			if err := p.applyColumn(v, p.columns[i], cell, merged, hasType, &classText); err != nil {
				rowErr = err
				return false
			}
			i++
			return true
		})
		if rowErr != nil {
			return rowErr
		}

		if v.Lesson == "" {
			continue
		}
		if v.Type == "" {
			p.inferType(v, row)
		}

		for _, class := range p.resolveClasses(classText) {
			if p.validClass(class) {
				v.AddClass(class)
			}
		}
		day.AddSubstitution(v)
	}
	return nil
}

// parseGrouped handles tables where rows are grouped under inline header
// cells carrying the class name. A failure to decode a single row is
// logged and skipped; only configuration errors abort the table.
func (p *Parser) parseGrouped(table *goquery.Selection, day *ScheduleDay) error {
	var fatal error
	table.Find("td.inline_header").EachWithBreak(func(_ int, header *goquery.Selection) bool {
		class := p.className(cellText(header))
		if !p.validClass(class) {
			return true
		}

		row := header.Parent().Next()
		if row.Length() > 0 && row.Find("td").Length() == 0 {
			row = row.Next()
		}
		skip := 0
		for row.Length() > 0 && row.Find("td").First().AttrOr("class", "") != "list inline_header" {
			if skip > 0 {
				skip--
				row = row.Next()
				continue
			}
			rowSkip, err := p.parseGroupedRow(row, day, class)
			if err != nil {
				var cfgErr *ConfigError
				if errors.As(err, &cfgErr) {
					fatal = err
					return false
				}
				log.Printf("untis: skipping malformed row for class %q: %v", class, err)
			} else {
				skip = rowSkip
			}
			row = row.Next()
		}
		return true
	})
	return fatal
}

// parseGroupedRow decodes one data row belonging to a class group and
// returns how many following rows were consumed as continuations.
func (p *Parser) parseGroupedRow(row *goquery.Selection, day *ScheduleDay, class string) (int, error) {
	v := &Substitution{}
	skip := 0
	var rowErr error
	i := 0
	row.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		text := cellText(cell)
		if isEmptyCell(text) {
			i++
			return true
		}
		if i >= len(p.columns) {
			rowErr = fmt.Errorf("row has %d filled columns, schema has %d", i+1, len(p.columns))
			return false
		}

		merged, colSkip := mergeContinuation(row, i, text)
		if colSkip > skip {
			skip = colSkip
		}

		if p.columns[i] == ColClass {
			// The class column cannot appear in grouped layouts; the
			// class comes from the header line.
			rowErr = fmt.Errorf("class column in grouped layout")
			return false
		}
		if err := p.applyColumn(v, p.columns[i], cell, merged, false, nil); err != nil {
			rowErr = err
			return false
		}
		i++
		return true
	})
	if rowErr != nil {
		return 0, rowErr
	}

	if v.Type == "" {
		v.Type = "Vertretung"
		v.Color = p.colors.Color(v.Type)
	}
	v.AddClass(class)

	if v.Lesson != "" {
		day.AddSubstitution(v)
	}
	return skip, nil
}

// applyColumn writes one cell into the record according to its declared
// column type. classText receives the raw class designator in flat
// layouts and is nil in grouped ones.
func (p *Parser) applyColumn(v *Substitution, col ColumnType, cell *goquery.Selection,
	text string, hasType bool, classText *string) error {
	switch col {
	case ColLesson:
		v.Lesson = text
	case ColSubject:
		prev, cur := splitStrike(cell)
		if prev != "" {
			v.PreviousSubject = prev
		}
		v.Subject = cur
	case ColPreviousSubject:
		v.PreviousSubject = text
	case ColType:
		v.Type = text
		v.Color = p.colors.Color(text)
	case ColTypeEntfall:
		if text == "x" {
			v.Type = "Entfall"
			v.Color = p.colors.Color("Entfall")
		} else if !hasType {
			v.Type = "Vertretung"
			v.Color = p.colors.Color("Vertretung")
		}
	case ColRoom:
		prev, cur := splitStrike(cell)
		if prev != "" {
			v.PreviousRoom = prev
		}
		v.Room = cur
	case ColPreviousRoom:
		v.PreviousRoom = text
	case ColTeacher:
		prev, cur := splitStrike(cell)
		if prev != "" {
			v.PreviousTeacher = prev
		}
		v.Teacher = cur
	case ColPreviousTeacher:
		v.PreviousTeacher = text
	case ColDesc:
		v.Desc = text
	case ColDescType:
		v.Desc = text
		if recognized := RecognizeType(text); recognized != "" {
			v.Type = recognized
			v.Color = p.colors.Color(recognized)
		}
	case ColSubstitutionFrom:
		v.SubstitutionFrom = text
	case ColTeacherTo:
		v.TeacherTo = text
	case ColClass:
		if classText == nil {
			return fmt.Errorf("class column in grouped layout")
		}
		*classText = p.className(text)
	case ColIgnore:
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown column type: %q", col)}
	}
	return nil
}

// mergeContinuation extends a cell's text with the matching cell of the
// following rows for as long as those rows are visual wraps of this one:
// same cell count, and the candidate column's text is the entire visible
// text of the row. Returns the merged text and the number of rows
// consumed; the caller advances by the widest continuation found in any
// column of the row.
func mergeContinuation(row *goquery.Selection, column int, text string) (string, int) {
	skip := 0
	next := row.Next()
	for next.Length() > 0 && next.Children().Length() == row.Children().Length() {
		cell := next.Find("td").Eq(column)
		if cellText(cell) != cellText(next) {
			break
		}
		text += " " + cellText(cell)
		skip++
		next = next.Next()
	}
	return text, skip
}

// flatRows selects the data rows of a flat-layout table in document
// order: zebra-striped list rows that are not group headers, plus rows of
// center-aligned cells (skipping the first of those, the column header).
func flatRows(table *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection
	centerRows := 0
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		isList := tr.HasClass("list") && (tr.HasClass("odd") || tr.HasClass("even")) &&
			tr.Find("td.inline_header").Length() == 0
		isCenter := false
		if tr.Find("td[align=center]").Length() > 0 {
			isCenter = centerRows > 0
			centerRows++
		}
		if isList || isCenter {
			rows = append(rows, tr)
		}
	})
	return rows
}
