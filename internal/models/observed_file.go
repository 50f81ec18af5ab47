package models

import (
	"math"
	"path/filepath"
	"strings"
	"time"
)

// ObservedFile is a point-in-time view of a file in one of the pipeline folders.
// It is rebuilt on every poll cycle and never persisted.
type ObservedFile struct {
	Name      string
	Path      string
	SizeBytes int64
	ModTime   time.Time // in the monitor's zone
	Extension string    // including the dot, as found on disk
}

// NewObservedFile builds an ObservedFile from a directory listing entry.
func NewObservedFile(path string, size int64, modTime time.Time, loc *time.Location) ObservedFile {
	if loc != nil {
		modTime = modTime.In(loc)
	}
	name := filepath.Base(path)
	return ObservedFile{
		Name:      name,
		Path:      path,
		SizeBytes: size,
		ModTime:   modTime,
		Extension: filepath.Ext(name),
	}
}

// SizeMB returns the size in mebibytes rounded to two decimals.
func (f ObservedFile) SizeMB() float64 {
	return math.Round(float64(f.SizeBytes)/1024/1024*100) / 100
}

// HasExtension compares ext case-insensitively, with or without the leading dot.
func (f ObservedFile) HasExtension(ext string) bool {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.EqualFold(f.Extension, ext)
}
