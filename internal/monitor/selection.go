package monitor

import (
	"strings"
	"time"

	"github.com/aleister1102/outboundwatch/internal/common/timeutils"
	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/aleister1102/outboundwatch/internal/models"
)

// SelectCandidate picks the file a step should evaluate: among files carrying
// today's date token (unless the process disables that filter), the one with
// the latest modification time. Names are compared case-insensitively.
func SelectCandidate(files []models.ObservedFile, proc config.ProcessConfig, now time.Time) (models.ObservedFile, bool) {
	token := timeutils.FormatDate(now, proc.EffectiveDateFormat())
	requireToken := proc.RequiresTodayDate()

	latestByName := make(map[string]models.ObservedFile, len(files))
	for _, f := range files {
		if requireToken && !strings.Contains(f.Name, token) {
			continue
		}
		name := strings.ToLower(f.Name)
		if existing, ok := latestByName[name]; !ok || f.ModTime.After(existing.ModTime) {
			latestByName[name] = f
		}
	}

	var best models.ObservedFile
	found := false
	for _, f := range latestByName {
		if !found || f.ModTime.After(best.ModTime) || (f.ModTime.Equal(best.ModTime) && f.Name < best.Name) {
			best = f
			found = true
		}
	}
	return best, found
}

// filterExtension keeps the files with extension ext, compared case-insensitively.
func filterExtension(files []models.ObservedFile, ext string) []models.ObservedFile {
	kept := files[:0:0]
	for _, f := range files {
		if f.HasExtension(ext) {
			kept = append(kept, f)
		}
	}
	return kept
}
