package main

import (
	"flag"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"vertretungsplan-scraper/config"
	"vertretungsplan-scraper/ical"
	"vertretungsplan-scraper/scraper"
	"vertretungsplan-scraper/site"
	"vertretungsplan-scraper/uploader"
)

func main() {
	configFile := flag.String("config", "config/common_config.json", "path to the common config file")
	once := flag.Bool("once", false, "scrape every school a single time and exit")
	flag.Parse()

	cfg, err := config.LoadCommonConfig(*configFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatalf("Error creating output dir: %v", err)
	}

	server := site.NewServer(cfg.OutputDir)
	if cfg.ListenAddr != "" {
		go func() {
			if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
				log.Fatalf("Error running site server: %v", err)
			}
		}()
	}

	for {
		schools, err := config.LoadSchoolConfigs(cfg.SchoolsDir)
		if err != nil {
			log.Fatalf("Error loading school configs: %v", err)
		}
		if len(schools) == 0 {
			log.Printf("No school configs found in %s", cfg.SchoolsDir)
		}

		for _, school := range schools {
			if err := runSchool(cfg, school, server); err != nil {
				log.Printf("Error scraping %s: %v", school.Name, err)
			}
		}

		if *once {
			return
		}
		time.Sleep(time.Duration(cfg.PollIntervalMinutes) * time.Minute)
	}
}

// runSchool scrapes one school and publishes the result: an .ics file on
// disk, the in-memory schedule for the site server, and optionally a
// GitHub upload.
func runSchool(cfg *config.CommonConfig, school *config.SchoolConfig, server *site.Server) error {
	scr, err := scraper.New(school)
	if err != nil {
		return err
	}

	schedule, err := scr.Fetch()
	if err != nil {
		return err
	}
	days := 0
	subs := 0
	for _, day := range schedule.Days {
		days++
		subs += len(day.Substitutions)
	}
	log.Printf("%s: parsed %d substitutions on %d days", school.Name, subs, days)

	icsFile := filepath.Join(cfg.OutputDir, school.Name+".ics")
	if err := ical.Write(schedule, school.Name, icsFile); err != nil {
		return err
	}
	server.SetSchedule(school.Name, schedule)

	if cfg.GithubToken != "" && cfg.GithubRepo != "" {
		remote := path.Join(cfg.GithubPath, school.Name+".ics")
		if err := uploader.UploadSchedule(cfg.GithubToken, cfg.GithubRepo, remote, icsFile); err != nil {
			return err
		}
	}
	return nil
}
