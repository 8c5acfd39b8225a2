package indexer

import (
	"fmt"
	"time"
)

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// formatSize renders a byte count the way the index table shows it:
// integer bytes and KB, one decimal place from megabytes up.
func formatSize(size int64) string {
	switch {
	case size < kib:
		return fmt.Sprintf("%dB", size)
	case size < mib:
		return fmt.Sprintf("%dKB", size/kib)
	case size < gib:
		return fmt.Sprintf("%.1fMB", float64(size)/mib)
	default:
		return fmt.Sprintf("%.1fGB", float64(size)/gib)
	}
}

// formatAge renders a coarse relative age of a file against the
// generation wall-clock time.
func formatAge(modTime, now time.Time) string {
	diff := int64(now.Sub(modTime).Seconds())

	switch {
	case diff < 60:
		return "just now"
	case diff < 3600:
		return fmt.Sprintf("%d minutes ago", diff/60)
	case diff < 86400:
		return fmt.Sprintf("%d hours ago", diff/3600)
	default:
		return fmt.Sprintf("%d days ago", diff/86400)
	}
}
