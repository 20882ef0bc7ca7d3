package ui

import "time"

// Terminal width below which the header drops secondary fields.
const LayoutCompactWidth = 80

// Log screen limits.
const (
	// LogTailLimit is the number of lines read from the end of the log file.
	LogTailLimit = 500

	// LogRefreshDebounce is the minimum time between log file reads.
	LogRefreshDebounce = 400 * time.Millisecond
)

// DefaultRefreshInterval is how often the UI re-reads the catalog snapshot.
const DefaultRefreshInterval = 500 * time.Millisecond

// statCeiling is the largest base stat any species has.
const statCeiling = 255
