package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Retry configuration
const maxRetries = 3
const retryDelay = 2 * time.Minute

// exportTTL is how long generated export files stay around before the
// nightly sweep removes them.
const exportTTL = 24 * time.Hour

// CleanupExpiredExports removes generated xlsx exports older than the TTL.
func CleanupExpiredExports(dir string, ttl time.Duration) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading exports directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > ttl {
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				log.Printf("error deleting expired export %s: %v", path, err)
			}
		}
	}
	return nil
}

// RunScheduledCleanup sweeps expired export files daily at 1 AM, with retries.
func RunScheduledCleanup() {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		log.Println("running scheduled export cleanup...")

		for retries := 0; retries < maxRetries; retries++ {
			err := CleanupExpiredExports("./public/files", exportTTL)
			if err == nil {
				log.Println("export cleanup successful")
				return
			}
			log.Printf("export cleanup failed (attempt %d): %v", retries+1, err)
			time.Sleep(retryDelay)
		}
		log.Printf("export cleanup failed after %d retries", maxRetries)
	})

	c.Start()
	select {}
}
