package logger

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// PurgeOptions controls a retention sweep over the log directory.
// A negative limit disables that criterion; with both disabled the
// sweep only counts files.
type PurgeOptions struct {
	// MaxAgeDays deletes files whose date is strictly older than this
	// many days. Negative disables the age check.
	MaxAgeDays int

	// MaxFiles keeps at most this many of the newest files. Negative
	// disables the count check.
	MaxFiles int

	// DryRun reports what would be deleted without deleting anything.
	DryRun bool
}

// PurgeStats summarizes a retention sweep.
type PurgeStats struct {
	TotalFiles   int
	DeletedFiles int
	SkippedFiles int
	Errors       []string
}

// PurgeLogs removes aged-out date-named log files from the file sink's
// directory. Only files matching the YYYY-MM-DD.log naming scheme are
// considered; rotation archives and foreign files are left alone.
// Individual deletion failures are collected in the stats rather than
// aborting the sweep. Without a file sink the sweep is a no-op.
func (l *AsyncLogger) PurgeLogs(opts PurgeOptions) PurgeStats {
	var stats PurgeStats

	l.mu.Lock()
	rotating := l.rotating
	l.mu.Unlock()
	if rotating == nil {
		return stats
	}

	fs := rotating.Filesystem()
	dir := rotating.Dir()

	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("read %s: %v", dir, err))
		return stats
	}

	type dated struct {
		name string
		date time.Time
	}
	var files []dated
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".log") {
			continue
		}
		stamp := strings.TrimSuffix(info.Name(), ".log")
		date, err := time.Parse("2006-01-02", stamp)
		if err != nil {
			continue
		}
		files = append(files, dated{name: info.Name(), date: date})
	}
	stats.TotalFiles = len(files)

	sort.Slice(files, func(i, j int) bool {
		return files[i].date.After(files[j].date)
	})

	now := time.Now().UTC()
	for idx, f := range files {
		days := int(now.Sub(f.date).Hours() / 24)

		del := false
		if opts.MaxAgeDays >= 0 && days > opts.MaxAgeDays {
			del = true
		}
		if opts.MaxFiles >= 0 && idx >= opts.MaxFiles {
			del = true
		}
		if !del {
			stats.SkippedFiles++
			continue
		}

		if opts.DryRun {
			stats.DeletedFiles++
			continue
		}
		if err := fs.Remove(filepath.Join(dir, f.name)); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("remove %s: %v", f.name, err))
			continue
		}
		stats.DeletedFiles++
	}

	return stats
}
