package timeutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// dateTokens maps letter runs of a "yyyyMMdd" style pattern to Go layouts.
var dateTokens = map[string]string{
	"yyyy": "2006",
	"yy":   "06",
	"MMMM": "January",
	"MMM":  "Jan",
	"MM":   "01",
	"M":    "1",
	"dd":   "02",
	"d":    "2",
	"HH":   "15",
	"H":    "15",
	"hh":   "03",
	"h":    "3",
	"mm":   "04",
	"m":    "4",
	"ss":   "05",
	"s":    "5",
}

// FormatDate renders t with a file-name date pattern. Patterns containing '%'
// use strftime directives; anything else uses "yyyyMMdd" style letter runs,
// with single-quoted sections copied literally.
func FormatDate(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultDateFormat
	}
	if strings.ContainsRune(pattern, '%') {
		return strftime.Format(pattern, t)
	}

	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]
		if r == '\'' {
			end := i + 1
			for end < len(runes) && runes[end] != '\'' {
				end++
			}
			b.WriteString(string(runes[i+1 : end]))
			i = end + 1
			continue
		}

		j := i
		for j < len(runes) && runes[j] == r {
			j++
		}
		run := string(runes[i:j])
		if layout, ok := dateTokens[run]; ok {
			b.WriteString(t.Format(layout))
		} else if isTokenLetter(r) {
			// e.g. "yyy": fall back to the longest known prefix repeatedly
			b.WriteString(formatLongRun(t, run))
		} else {
			b.WriteString(run)
		}
		i = j
	}
	return b.String()
}

// ValidateDateFormat reports whether pattern produces a non-empty token.
func ValidateDateFormat(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("date format must not be empty")
	}
	sample := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)
	if FormatDate(sample, pattern) == pattern {
		return fmt.Errorf("date format %q contains no date tokens", pattern)
	}
	return nil
}

func isTokenLetter(r rune) bool {
	switch r {
	case 'y', 'M', 'd', 'H', 'h', 'm', 's':
		return true
	}
	return false
}

func formatLongRun(t time.Time, run string) string {
	var b strings.Builder
	for len(run) > 0 {
		matched := false
		for n := len(run); n > 0; n-- {
			if layout, ok := dateTokens[run[:n]]; ok {
				b.WriteString(t.Format(layout))
				run = run[n:]
				matched = true
				break
			}
		}
		if !matched {
			b.WriteString(run[:1])
			run = run[1:]
		}
	}
	return b.String()
}
