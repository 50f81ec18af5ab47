package timeutils

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// windowsZoneAliases covers the Windows zone names most often found in
// configuration written for Windows hosts.
var windowsZoneAliases = map[string]string{
	"india standard time":          "Asia/Kolkata",
	"utc":                          "UTC",
	"coordinated universal time":   "UTC",
	"eastern standard time":        "America/New_York",
	"central standard time":        "America/Chicago",
	"mountain standard time":       "America/Denver",
	"pacific standard time":        "America/Los_Angeles",
	"gmt standard time":            "Europe/London",
	"central europe standard time": "Europe/Budapest",
	"w. europe standard time":      "Europe/Berlin",
	"singapore standard time":      "Asia/Singapore",
	"tokyo standard time":          "Asia/Tokyo",
}

// LoadZone resolves an IANA zone name or a known Windows zone name.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	if alias, ok := windowsZoneAliases[strings.ToLower(name)]; ok {
		name = alias
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	return loc, nil
}
