// Package sla estimates when a file will finish downstream processing and
// whether that estimate misses a deadline.
package sla

import (
	"math"
	"time"

	"github.com/aleister1102/outboundwatch/internal/models"
)

const (
	// DefaultMBPerHour applies when the configured ratio is not positive.
	DefaultMBPerHour = 250.0
	// minProcessingHours keeps tiny files from estimating zero duration.
	minProcessingHours = 0.01
)

// Estimator projects completion times from file size and a throughput ratio.
type Estimator struct {
	mbPerHour float64
}

// NewEstimator creates an estimator; a ratio <= 0 falls back to DefaultMBPerHour.
func NewEstimator(mbPerHour float64) *Estimator {
	if mbPerHour <= 0 || math.IsNaN(mbPerHour) || math.IsInf(mbPerHour, 0) {
		mbPerHour = DefaultMBPerHour
	}
	return &Estimator{mbPerHour: mbPerHour}
}

// Ratio returns the effective throughput in MB per hour.
func (e *Estimator) Ratio() float64 {
	return e.mbPerHour
}

// EstimateCompletion returns start plus max(0.01h, SizeMB/ratio).
func (e *Estimator) EstimateCompletion(start time.Time, file models.ObservedFile) time.Time {
	hours := math.Max(minProcessingHours, file.SizeMB()/e.mbPerHour)
	return start.Add(time.Duration(hours * float64(time.Hour)))
}

// IsSlaAtRisk reports whether estimate is strictly after deadline.
func (e *Estimator) IsSlaAtRisk(estimate, deadline time.Time) bool {
	return estimate.After(deadline)
}
