package monitor

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CycleTracker numbers poll cycles and enforces the optional cycle limit.
type CycleTracker struct {
	currentCycleID string
	startedAt      time.Time
	mutex          sync.RWMutex
	maxCycles      int
	currentCycle   int
	alerts         int
}

// NewCycleTracker creates a new CycleTracker; maxCycles 0 means unlimited.
func NewCycleTracker(maxCycles int) *CycleTracker {
	return &CycleTracker{
		maxCycles: maxCycles,
	}
}

// StartCycle begins a new cycle, increments the counter and returns the new cycle ID.
func (ct *CycleTracker) StartCycle(now time.Time) string {
	ct.mutex.Lock()
	defer ct.mutex.Unlock()

	ct.currentCycle++
	ct.currentCycleID = uuid.NewString()
	ct.startedAt = now
	ct.alerts = 0
	return ct.currentCycleID
}

// AddAlert counts a notification raised in the current cycle.
func (ct *CycleTracker) AddAlert() {
	ct.mutex.Lock()
	ct.alerts++
	ct.mutex.Unlock()
}

// EndCycle returns the number of alerts raised and the elapsed time of the current cycle.
func (ct *CycleTracker) EndCycle(now time.Time) (int, time.Duration) {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	return ct.alerts, now.Sub(ct.startedAt)
}

// ShouldContinue returns false if the maximum number of cycles has been reached.
func (ct *CycleTracker) ShouldContinue() bool {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	if ct.maxCycles == 0 {
		return true
	}
	return ct.currentCycle < ct.maxCycles
}

// GetCurrentCycleID returns the current cycle ID
func (ct *CycleTracker) GetCurrentCycleID() string {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	return ct.currentCycleID
}

// CompletedCycles returns how many cycles have been started.
func (ct *CycleTracker) CompletedCycles() int {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	return ct.currentCycle
}
