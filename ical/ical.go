// Package ical renders parsed substitution schedules to iCalendar files
// so calendar apps can subscribe to them.
package ical

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"vertretungsplan-scraper/untis"
)

// Build converts a schedule into a calendar with one all-day event per
// substitution. Days without a parseable date are skipped.
func Build(schedule *untis.Schedule, name string) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	now := time.Now()
	for _, day := range schedule.Days {
		if day.Date.IsZero() {
			continue
		}
		for _, sub := range day.Substitutions {
			summary := eventSummary(sub)
			event := cal.AddEvent(eventID(name, day.DateString, sub.Lesson, summary))
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetModifiedAt(now)
			event.SetAllDayStartAt(day.Date)
			event.SetAllDayEndAt(day.Date.AddDate(0, 0, 1))
			event.SetSummary(summary)
			if sub.Room != "" {
				event.SetLocation(sub.Room)
			}
			if desc := eventDescription(sub); desc != "" {
				event.SetDescription(desc)
			}
		}
	}
	return cal
}

// Write serializes the schedule to an .ics file.
func Write(schedule *untis.Schedule, name, filename string) error {
	cal := Build(schedule, name)
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return cal.SerializeTo(file)
}

func eventSummary(sub *untis.Substitution) string {
	parts := []string{}
	if len(sub.Classes) > 0 {
		parts = append(parts, strings.Join(sub.Classes, ", "))
	}
	parts = append(parts, "Std "+sub.Lesson, sub.Type)
	if sub.Subject != "" {
		parts = append(parts, sub.Subject)
	} else if sub.PreviousSubject != "" {
		parts = append(parts, sub.PreviousSubject)
	}
	return strings.Join(parts, " ")
}

func eventDescription(sub *untis.Substitution) string {
	var lines []string
	if line := changeLine("Fach", sub.Subject, sub.PreviousSubject); line != "" {
		lines = append(lines, line)
	}
	if line := changeLine("Lehrer", sub.Teacher, sub.PreviousTeacher); line != "" {
		lines = append(lines, line)
	}
	if line := changeLine("Raum", sub.Room, sub.PreviousRoom); line != "" {
		lines = append(lines, line)
	}
	if sub.SubstitutionFrom != "" {
		lines = append(lines, "Vertr. von: "+sub.SubstitutionFrom)
	}
	if sub.TeacherTo != "" {
		lines = append(lines, "(Le.) nach: "+sub.TeacherTo)
	}
	if sub.Desc != "" {
		lines = append(lines, sub.Desc)
	}
	return strings.Join(lines, "\n")
}

func changeLine(label, current, previous string) string {
	switch {
	case current != "" && previous != "":
		return fmt.Sprintf("%s: %s (statt %s)", label, current, previous)
	case current != "":
		return fmt.Sprintf("%s: %s", label, current)
	case previous != "":
		return fmt.Sprintf("%s: entfällt (%s)", label, previous)
	}
	return ""
}

func eventID(parts ...string) string {
	hash := md5.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(hash[:])
}
