package ical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vertretungsplan-scraper/untis"
)

func sampleSchedule() *untis.Schedule {
	day := &untis.ScheduleDay{
		Date:       time.Date(2026, time.September, 2, 0, 0, 0, 0, time.Local),
		DateString: "2.9.2026 Mittwoch",
	}
	day.AddSubstitution(&untis.Substitution{
		Classes:         []string{"5a"},
		Lesson:          "3",
		Type:            "Vertretung",
		Subject:         "Ph",
		PreviousSubject: "Ma",
		Teacher:         "SCH",
		Room:            "B12",
		Desc:            "Aufgaben siehe Moodle",
	})
	return &untis.Schedule{Days: []*untis.ScheduleDay{day}}
}

func TestBuildProducesAllDayEvents(t *testing.T) {
	cal := Build(sampleSchedule(), "testschule")
	serialized := cal.Serialize()

	assert.Contains(t, serialized, "METHOD:PUBLISH")
	assert.Contains(t, serialized, "SUMMARY:5a Std 3 Vertretung Ph")
	assert.Contains(t, serialized, "DTSTART;VALUE=DATE:20260902")
	assert.Contains(t, serialized, "DTEND;VALUE=DATE:20260903")
	assert.Contains(t, serialized, "LOCATION:B12")
	assert.Contains(t, serialized, "Ph (statt Ma)")
}

func TestBuildSkipsDaysWithoutDate(t *testing.T) {
	schedule := sampleSchedule()
	schedule.Days[0].Date = time.Time{}

	cal := Build(schedule, "testschule")
	assert.Empty(t, cal.Events())
}

func TestEventSummaryFallsBackToPreviousSubject(t *testing.T) {
	summary := eventSummary(&untis.Substitution{
		Classes:         []string{"7b"},
		Lesson:          "1",
		Type:            "Entfall",
		PreviousSubject: "De",
	})
	assert.Equal(t, "7b Std 1 Entfall De", summary)
}

func TestEventDescription(t *testing.T) {
	desc := eventDescription(&untis.Substitution{
		Teacher:         "SCH",
		PreviousTeacher: "MUE",
		PreviousRoom:    "A1",
		Desc:            "Raum beachten",
	})

	require.NotEmpty(t, desc)
	assert.Contains(t, desc, "Lehrer: SCH (statt MUE)")
	assert.Contains(t, desc, "Raum: entfällt (A1)")
	assert.Contains(t, desc, "Raum beachten")
}

func TestEventIDIsStable(t *testing.T) {
	a := eventID("school", "2.9.2026", "3", "summary")
	b := eventID("school", "2.9.2026", "3", "summary")
	c := eventID("school", "2.9.2026", "4", "summary")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}
