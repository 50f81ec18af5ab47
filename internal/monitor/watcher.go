package monitor

import (
	"context"
	"fmt"

	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FolderWatcher logs filesystem events in the pipeline folders. It is
// diagnostic only and never feeds the alerting logic.
type FolderWatcher struct {
	folders []config.NamedFolder
	logger  zerolog.Logger
}

// NewFolderWatcher creates a watcher over folders.
func NewFolderWatcher(folders []config.NamedFolder, logger zerolog.Logger) *FolderWatcher {
	return &FolderWatcher{
		folders: folders,
		logger:  logger.With().Str("component", "FolderWatcher").Logger(),
	}
}

// Run watches until ctx is done. Setup failures are logged and end the
// watcher without an error.
func (fw *FolderWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fw.logger.Warn().Err(fmt.Errorf("failed to create file watcher: %w", err)).Msg("Folder watchers disabled")
		return nil
	}
	defer watcher.Close()

	watched := 0
	for _, folder := range fw.folders {
		if err := watcher.Add(folder.Path); err != nil {
			fw.logger.Warn().Err(err).Str("role", folder.Role).Str("folder", folder.Path).Msg("Cannot watch folder")
			continue
		}
		watched++
	}
	if watched == 0 {
		return nil
	}
	fw.logger.Info().Int("folders", watched).Msg("Folder watchers started")

	for {
		select {
		case <-ctx.Done():
			fw.logger.Debug().Msg("Folder watchers stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case event.Has(fsnotify.Create):
				fw.logger.Info().Str("path", event.Name).Msg("File created event")
			case event.Has(fsnotify.Write):
				fw.logger.Info().Str("path", event.Name).Msg("File changed event")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Error().Err(err).Msg("File watcher error")
		}
	}
}
