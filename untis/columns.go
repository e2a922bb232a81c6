package untis

import "fmt"

// ColumnType describes what a physical column of a substitution table
// means. The set of tags is closed; configurations referencing anything
// else are rejected when they are loaded.
type ColumnType string

const (
	ColLesson           ColumnType = "lesson"
	ColSubject          ColumnType = "subject"
	ColPreviousSubject  ColumnType = "previousSubject"
	ColType             ColumnType = "type"
	ColTypeEntfall      ColumnType = "type-entfall"
	ColRoom             ColumnType = "room"
	ColPreviousRoom     ColumnType = "previousRoom"
	ColTeacher          ColumnType = "teacher"
	ColPreviousTeacher  ColumnType = "previousTeacher"
	ColDesc             ColumnType = "desc"
	ColDescType         ColumnType = "desc-type"
	ColSubstitutionFrom ColumnType = "substitutionFrom"
	ColTeacherTo        ColumnType = "teacherTo"
	ColClass            ColumnType = "class"
	ColIgnore           ColumnType = "ignore"
)

var knownColumns = map[ColumnType]bool{
	ColLesson:           true,
	ColSubject:          true,
	ColPreviousSubject:  true,
	ColType:             true,
	ColTypeEntfall:      true,
	ColRoom:             true,
	ColPreviousRoom:     true,
	ColTeacher:          true,
	ColPreviousTeacher:  true,
	ColDesc:             true,
	ColDescType:         true,
	ColSubstitutionFrom: true,
	ColTeacherTo:        true,
	ColClass:            true,
	ColIgnore:           true,
}

// ParseColumnType validates a column tag from a configuration file.
func ParseColumnType(tag string) (ColumnType, error) {
	c := ColumnType(tag)
	if !knownColumns[c] {
		return "", &ConfigError{Reason: fmt.Sprintf("unknown column type: %q", tag)}
	}
	return c, nil
}

// ParseColumns validates a whole column schema.
func ParseColumns(tags []string) ([]ColumnType, error) {
	if len(tags) == 0 {
		return nil, &ConfigError{Reason: "columns must not be empty"}
	}
	cols := make([]ColumnType, 0, len(tags))
	for _, tag := range tags {
		c, err := ParseColumnType(tag)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}
