package monitor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/outboundwatch/internal/common/errorwrapper"
	"github.com/aleister1102/outboundwatch/internal/common/retry"
	"github.com/aleister1102/outboundwatch/internal/models"
	"github.com/rs/zerolog"
)

// FolderScanner lists the files of a pipeline folder that match a process pattern.
type FolderScanner struct {
	retry  *retry.Executor
	loc    *time.Location
	logger zerolog.Logger
}

// NewFolderScanner creates a scanner reporting modification times in loc.
func NewFolderScanner(executor *retry.Executor, loc *time.Location, logger zerolog.Logger) *FolderScanner {
	return &FolderScanner{
		retry:  executor,
		loc:    loc,
		logger: logger.With().Str("component", "FolderScanner").Logger(),
	}
}

// List returns the regular files in folder whose names match pattern
// case-insensitively. Failures are retried; once retries are exhausted the
// error is logged and an empty listing returned.
func (fs *FolderScanner) List(ctx context.Context, folder, pattern string) []models.ObservedFile {
	files, err := retry.Do(ctx, fs.retry, "list "+folder, func(context.Context) ([]models.ObservedFile, error) {
		return fs.listOnce(folder, pattern)
	})
	if err != nil {
		if ctx.Err() == nil {
			fs.logger.Error().Err(err).Str("folder", folder).Msg("Folder access failure")
		}
		return nil
	}
	return files
}

func (fs *FolderScanner) listOnce(folder, pattern string) ([]models.ObservedFile, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, errorwrapper.WrapErrorf(errorwrapper.ErrFolderUnavailable, "%s: %v", folder, err)
	}
	if !info.IsDir() {
		return nil, errorwrapper.WrapErrorf(errorwrapper.ErrFolderUnavailable, "%s is not a directory", folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, errorwrapper.WrapErrorf(err, "failed to read folder %s", folder)
	}

	lowerPattern := strings.ToLower(pattern)
	files := make([]models.ObservedFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := filepath.Match(lowerPattern, strings.ToLower(entry.Name()))
		if err != nil {
			return nil, errorwrapper.WrapErrorf(err, "invalid search pattern %q", pattern)
		}
		if !matched {
			continue
		}
		entryInfo, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		if !entryInfo.Mode().IsRegular() {
			continue
		}
		files = append(files, models.NewObservedFile(filepath.Join(folder, entry.Name()), entryInfo.Size(), entryInfo.ModTime(), fs.loc))
	}
	return files, nil
}
