package monitor

import (
	"os"

	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/disk"
)

// FolderReport describes one pipeline folder after preflight.
type FolderReport struct {
	Role      string
	Path      string
	Ready     bool
	FreeBytes uint64
	LowDisk   bool
}

// EnsureFolders creates any missing pipeline folder and logs the free space
// of each folder's volume. Nothing here is fatal: failures are logged and the
// monitor keeps reporting the folder as missing files.
func EnsureFolders(folders []config.NamedFolder, lowDiskWarningMB int, logger zerolog.Logger) []FolderReport {
	log := logger.With().Str("component", "Preflight").Logger()
	threshold := uint64(lowDiskWarningMB) * 1024 * 1024

	reports := make([]FolderReport, 0, len(folders))
	for _, folder := range folders {
		report := FolderReport{Role: folder.Role, Path: folder.Path}

		if err := os.MkdirAll(folder.Path, 0755); err != nil {
			log.Error().Err(err).Str("role", folder.Role).Str("folder", folder.Path).Msg("Cannot initialize folder")
			reports = append(reports, report)
			continue
		}
		report.Ready = true

		usage, err := disk.Usage(folder.Path)
		if err != nil {
			log.Warn().Err(err).Str("folder", folder.Path).Msg("Cannot read disk usage")
			reports = append(reports, report)
			continue
		}
		report.FreeBytes = usage.Free
		report.LowDisk = threshold > 0 && usage.Free < threshold

		event := log.Info()
		if report.LowDisk {
			event = log.Warn()
		}
		event.Str("role", folder.Role).
			Str("folder", folder.Path).
			Str("free", humanize.IBytes(usage.Free)).
			Float64("used_percent", usage.UsedPercent).
			Bool("low_disk", report.LowDisk).
			Msg("Folder ready")

		reports = append(reports, report)
	}
	return reports
}
