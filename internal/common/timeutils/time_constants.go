package timeutils

import "time"

// Common time layout constants
const (
	LayoutRFC3339   = time.RFC3339
	LayoutDateOnly  = "2006-01-02"
	LayoutTimeOnly  = "15:04:05"
	LayoutDateTime  = "2006-01-02 15:04:05"
	LayoutDateKey   = "20060102"
	LayoutShortTime = "15:04"
)

// DefaultDateFormat is the date token format expected in file names when none is configured.
const DefaultDateFormat = "yyyyMMdd"
