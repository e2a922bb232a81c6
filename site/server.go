// Package site serves the latest parsed schedules over HTTP: a JSON view
// for aggregators and the .ics files for calendar subscriptions.
package site

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"vertretungsplan-scraper/untis"
)

type Server struct {
	mu        sync.RWMutex
	schedules map[string]*untis.Schedule
	outputDir string
}

func NewServer(outputDir string) *Server {
	return &Server{
		schedules: make(map[string]*untis.Schedule),
		outputDir: outputDir,
	}
}

// SetSchedule publishes the latest parse result for a school.
func (s *Server) SetSchedule(name string, schedule *untis.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[name] = schedule
}

func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/schedules", s.handleIndex)
	mux.HandleFunc("/schedules/", s.handleSchedule)
	log.Printf("site: listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

type indexEntry struct {
	Name    string `json:"name"`
	Days    int    `json:"days"`
	Website string `json:"website,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	entries := make([]indexEntry, 0, len(s.schedules))
	for name, schedule := range s.schedules {
		entries = append(entries, indexEntry{
			Name:    name,
			Days:    len(schedule.Days),
			Website: schedule.Website,
		})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	writeJSON(w, entries)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/schedules/")
	switch {
	case strings.HasSuffix(name, ".json"):
		name = strings.TrimSuffix(name, ".json")
		s.mu.RLock()
		schedule, ok := s.schedules[name]
		s.mu.RUnlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, schedule)
	case strings.HasSuffix(name, ".ics"):
		w.Header().Set("Content-Type", "text/calendar")
		http.ServeFile(w, r, filepath.Join(s.outputDir, filepath.Base(name)))
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("site: writing response: %v", err)
	}
}
