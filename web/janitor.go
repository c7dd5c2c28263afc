package web

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor deletes generated video files past their TTL. Video resource
// handles are only valid within the session that created them, so their
// backing files have no reason to outlive the TTL.
type Janitor struct {
	dir    string
	ttl    time.Duration
	cron   *cron.Cron
	logger *log.Logger
}

// NewJanitor schedules a purge of dir on the given cron spec.
func NewJanitor(dir string, ttl time.Duration, spec string) (*Janitor, error) {
	j := &Janitor{
		dir:    dir,
		ttl:    ttl,
		cron:   cron.New(),
		logger: log.New(os.Stdout, "[janitor] ", log.LstdFlags),
	}

	if _, err := j.cron.AddFunc(spec, j.Purge); err != nil {
		return nil, err
	}
	return j, nil
}

// Start begins the schedule.
func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts the schedule.
func (j *Janitor) Stop() {
	j.cron.Stop()
}

// Purge removes files in the video directory older than the TTL.
func (j *Janitor) Purge() {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			j.logger.Printf("Error reading video directory: %v", err)
		}
		return
	}

	cutoff := time.Now().Add(-j.ttl)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			j.logger.Printf("Error removing %s: %v", path, err)
			continue
		}
		j.logger.Printf("Removed expired video file %s", path)
	}
}
