package untis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleSubstitution() *Substitution {
	return &Substitution{
		Classes: []string{"5a"},
		Lesson:  "3",
		Type:    "Vertretung",
		Subject: "Ma",
		Teacher: "MUE",
		Room:    "B12",
	}
}

func TestEqualsExcludingClasses(t *testing.T) {
	a := sampleSubstitution()
	b := sampleSubstitution()
	b.Classes = []string{"7c"}

	assert.True(t, a.EqualsExcludingClasses(b))
	assert.False(t, a.Equals(b))

	b.Room = "C1"
	assert.False(t, a.EqualsExcludingClasses(b))
}

func TestAddClassKeepsSetUnique(t *testing.T) {
	s := &Substitution{}
	s.AddClass("5b")
	s.AddClass("5a")
	s.AddClass("5b")

	assert.Equal(t, []string{"5a", "5b"}, s.Classes)
}

func TestAddSubstitutionMergesEqualRecords(t *testing.T) {
	day := &ScheduleDay{}
	a := sampleSubstitution()
	b := sampleSubstitution()
	b.Classes = []string{"5b"}

	day.AddSubstitution(a)
	day.AddSubstitution(b)

	assert.Len(t, day.Substitutions, 1)
	assert.Equal(t, []string{"5a", "5b"}, day.Substitutions[0].Classes)
}

func TestAddSubstitutionKeepsDistinctRecords(t *testing.T) {
	day := &ScheduleDay{}
	a := sampleSubstitution()
	b := sampleSubstitution()
	b.Lesson = "4"

	day.AddSubstitution(a)
	day.AddSubstitution(b)

	assert.Len(t, day.Substitutions, 2)
}

func TestScheduleMergesPaginatedDays(t *testing.T) {
	schedule := &Schedule{}
	first := &ScheduleDay{DateString: "2.9.2026 Mittwoch"}
	first.AddSubstitution(sampleSubstitution())
	second := &ScheduleDay{DateString: "2.9.2026 Mittwoch"}
	other := sampleSubstitution()
	other.Lesson = "6"
	second.AddSubstitution(other)

	schedule.AddDay(first)
	schedule.AddDay(second)

	assert.Len(t, schedule.Days, 1)
	assert.Len(t, schedule.Days[0].Substitutions, 2)
}
