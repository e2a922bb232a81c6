package untis

import (
	"sort"
	"time"
)

// Substitution represents one changed lesson on a substitution schedule.
// Optional fields are empty strings when the source table did not fill them.
type Substitution struct {
	Classes          []string `json:"classes"`
	Lesson           string   `json:"lesson"`
	Type             string   `json:"type"`
	Subject          string   `json:"subject,omitempty"`
	PreviousSubject  string   `json:"previousSubject,omitempty"`
	Teacher          string   `json:"teacher,omitempty"`
	PreviousTeacher  string   `json:"previousTeacher,omitempty"`
	Room             string   `json:"room,omitempty"`
	PreviousRoom     string   `json:"previousRoom,omitempty"`
	Desc             string   `json:"desc,omitempty"`
	Color            string   `json:"color,omitempty"`
	SubstitutionFrom string   `json:"substitutionFrom,omitempty"`
	TeacherTo        string   `json:"teacherTo,omitempty"`
}

// AddClass adds a class name to the substitution, keeping the set unique
// and sorted.
func (s *Substitution) AddClass(class string) {
	for _, c := range s.Classes {
		if c == class {
			return
		}
	}
	s.Classes = append(s.Classes, class)
	sort.Strings(s.Classes)
}

// EqualsExcludingClasses reports whether every field except the class set
// matches. Schedules use this to merge substitutions that only differ in
// which classes they affect.
func (s *Substitution) EqualsExcludingClasses(o *Substitution) bool {
	if s == o {
		return true
	}
	if o == nil {
		return false
	}
	return s.Lesson == o.Lesson &&
		s.Type == o.Type &&
		s.Subject == o.Subject &&
		s.PreviousSubject == o.PreviousSubject &&
		s.Teacher == o.Teacher &&
		s.PreviousTeacher == o.PreviousTeacher &&
		s.Room == o.Room &&
		s.PreviousRoom == o.PreviousRoom &&
		s.Desc == o.Desc &&
		s.Color == o.Color &&
		s.SubstitutionFrom == o.SubstitutionFrom &&
		s.TeacherTo == o.TeacherTo
}

// Equals reports full equality, class sets included.
func (s *Substitution) Equals(o *Substitution) bool {
	if !s.EqualsExcludingClasses(o) {
		return false
	}
	if len(s.Classes) != len(o.Classes) {
		return false
	}
	for i, c := range s.Classes {
		if o.Classes[i] != c {
			return false
		}
	}
	return true
}

// ScheduleDay is one day on a substitution schedule: the parsed
// substitutions plus the free-text messages shown above or below the table.
type ScheduleDay struct {
	Date             time.Time       `json:"date,omitempty"`
	DateString       string          `json:"dateString"`
	LastChange       time.Time       `json:"lastChange,omitempty"`
	LastChangeString string          `json:"lastChangeString,omitempty"`
	Messages         []string        `json:"messages,omitempty"`
	Substitutions    []*Substitution `json:"substitutions"`
}

// AddSubstitution appends a substitution to the day. If an equal
// substitution (excluding classes) is already present, the class sets are
// merged instead.
func (d *ScheduleDay) AddSubstitution(s *Substitution) {
	for _, existing := range d.Substitutions {
		if existing.EqualsExcludingClasses(s) {
			for _, c := range s.Classes {
				existing.AddClass(c)
			}
			return
		}
	}
	d.Substitutions = append(d.Substitutions, s)
}

// AddMessage appends a free-text message to the day.
func (d *ScheduleDay) AddMessage(msg string) {
	d.Messages = append(d.Messages, msg)
}

// Schedule is a full parsed substitution schedule for one school.
type Schedule struct {
	Days    []*ScheduleDay `json:"days"`
	Classes []string       `json:"classes,omitempty"`
	Website string         `json:"website,omitempty"`
}

// AddDay appends a day to the schedule. Days with the same date string are
// merged, because paginated monitor displays serve one day across several
// pages.
func (s *Schedule) AddDay(day *ScheduleDay) {
	for _, existing := range s.Days {
		if existing.DateString != "" && existing.DateString == day.DateString {
			for _, sub := range day.Substitutions {
				existing.AddSubstitution(sub)
			}
			existing.Messages = append(existing.Messages, day.Messages...)
			if existing.LastChangeString == "" {
				existing.LastChange = day.LastChange
				existing.LastChangeString = day.LastChangeString
			}
			return
		}
	}
	s.Days = append(s.Days, day)
}
