package sla

import (
	"testing"
	"time"

	"github.com/aleister1102/outboundwatch/internal/models"
	"github.com/stretchr/testify/assert"
)

const mb = 1024 * 1024

func TestEstimateCompletion_RatioMath(t *testing.T) {
	start := time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)
	est := NewEstimator(100)

	got := est.EstimateCompletion(start, models.ObservedFile{SizeBytes: 200 * mb})

	assert.WithinDuration(t, start.Add(2*time.Hour), got, 36*time.Second)
}

func TestEstimateCompletion_MinimumDuration(t *testing.T) {
	start := time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)
	est := NewEstimator(250)

	got := est.EstimateCompletion(start, models.ObservedFile{SizeBytes: 10})

	assert.WithinDuration(t, start.Add(36*time.Second), got, time.Millisecond, "0.01h floor")
}

func TestNewEstimator_FallbackRatio(t *testing.T) {
	assert.Equal(t, DefaultMBPerHour, NewEstimator(0).Ratio())
	assert.Equal(t, DefaultMBPerHour, NewEstimator(-5).Ratio())
	assert.Equal(t, 42.0, NewEstimator(42).Ratio())

	start := time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)
	got := NewEstimator(0).EstimateCompletion(start, models.ObservedFile{SizeBytes: 500 * mb})
	assert.WithinDuration(t, start.Add(2*time.Hour), got, time.Second)
}

func TestIsSlaAtRisk_Boundary(t *testing.T) {
	est := NewEstimator(250)
	deadline := time.Date(2024, time.May, 10, 10, 0, 0, 0, time.UTC)

	assert.False(t, est.IsSlaAtRisk(deadline, deadline), "equal is not at risk")
	assert.False(t, est.IsSlaAtRisk(deadline.Add(-time.Second), deadline))
	assert.True(t, est.IsSlaAtRisk(deadline.Add(time.Second), deadline))
}
