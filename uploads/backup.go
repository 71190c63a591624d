package uploads

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// BackupSchedule copies the upload tree into a timestamped folder once a day
// at Hour:Minute and removes backup folders older than Retention.
type BackupSchedule struct {
	Src       string
	Dest      string
	Retention time.Duration
	Hour      int
	Minute    int
}

// Run blocks until ctx is cancelled.
func (b BackupSchedule) Run(ctx context.Context) {
	for {
		now := time.Now()
		next := nextRun(now, b.Hour, b.Minute)
		log.Info().Time("next", next).Msg("next upload backup scheduled")

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		dest, err := b.RunOnce(time.Now())
		if err != nil {
			log.Error().Err(err).Msg("upload backup failed")
		} else {
			log.Info().Str("dest", dest).Msg("uploads backed up")
		}
	}
}

// RunOnce takes one backup stamped with at and prunes old ones.
func (b BackupSchedule) RunOnce(at time.Time) (string, error) {
	dest := filepath.Join(b.Dest, at.Format("2006-01-02_15-04-05"))
	if err := copyDir(b.Src, dest); err != nil {
		return "", err
	}
	cleanupOldBackups(b.Dest, at.Add(-b.Retention))
	return dest, nil
}

func nextRun(now time.Time, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())
		if entry.IsDir() {
			err = copyDir(srcPath, destPath)
		} else {
			err = copyFile(srcPath, destPath)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func cleanupOldBackups(dir string, cutoff time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("read backup directory")
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		info, err := os.Stat(p)
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(p); err != nil {
			log.Error().Err(err).Str("path", p).Msg("remove old backup")
			continue
		}
		log.Info().Str("path", p).Msg("removed old backup")
	}
}
