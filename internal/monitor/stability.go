package monitor

import (
	"context"
	"os"
	"time"

	"github.com/aleister1102/outboundwatch/internal/common/retry"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
)

// SizeSampler reads the current length of a file.
type SizeSampler func(path string) (int64, error)

// LockProbe reports whether a file is held by another writer.
type LockProbe func(path string) bool

// FileChecker decides whether a candidate file is complete: its size has
// settled and nobody holds it open for writing.
type FileChecker struct {
	interval time.Duration
	attempts int
	sample   SizeSampler
	locked   LockProbe
	sleep    retry.SleepFunc
	retry    *retry.Executor
	logger   zerolog.Logger
}

// FileCheckerOption configures a FileChecker.
type FileCheckerOption func(*FileChecker)

// WithSizeSampler replaces the os.Stat based size sampler.
func WithSizeSampler(sample SizeSampler) FileCheckerOption {
	return func(fc *FileChecker) {
		fc.sample = sample
	}
}

// WithLockProbe replaces the flock based lock probe.
func WithLockProbe(probe LockProbe) FileCheckerOption {
	return func(fc *FileChecker) {
		fc.locked = probe
	}
}

// WithStabilitySleeper replaces the wait between size samples.
func WithStabilitySleeper(sleep retry.SleepFunc) FileCheckerOption {
	return func(fc *FileChecker) {
		fc.sleep = sleep
	}
}

// NewFileChecker creates a checker sampling up to attempts times, interval apart.
func NewFileChecker(interval time.Duration, attempts int, executor *retry.Executor, logger zerolog.Logger, opts ...FileCheckerOption) *FileChecker {
	fc := &FileChecker{
		interval: interval,
		attempts: attempts,
		sample:   statSize,
		locked:   isLocked,
		sleep:    retry.Sleep,
		retry:    executor,
		logger:   logger.With().Str("component", "FileChecker").Logger(),
	}
	for _, opt := range opts {
		opt(fc)
	}
	return fc
}

// IsStable samples the size of path and reports true as soon as two
// consecutive samples are equal and non-zero. A sampling failure that
// survives the retries, or cancellation, counts as unstable.
func (fc *FileChecker) IsStable(ctx context.Context, path string) bool {
	previous := int64(-1)
	for i := 0; i < fc.attempts; i++ {
		current, err := retry.Do(ctx, fc.retry, "sample size of "+path, func(context.Context) (int64, error) {
			return fc.sample(path)
		})
		if err != nil {
			fc.logger.Warn().Err(err).Str("path", path).Msg("Could not sample file size, treating as unstable")
			return false
		}
		if current == previous && current > 0 {
			return true
		}
		previous = current

		if i == fc.attempts-1 {
			break
		}
		if err := fc.sleep(ctx, fc.interval); err != nil {
			return false
		}
	}
	return false
}

// IsLocked reports whether path cannot be opened and exclusively locked.
func (fc *FileChecker) IsLocked(path string) bool {
	return fc.locked(path)
}

func statSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// isLocked opens path read-only and tries a non-blocking exclusive lock.
// Any failure, including a missing file, counts as locked.
func isLocked(path string) bool {
	fileLock := flock.New(path, flock.SetFlag(os.O_RDONLY))
	acquired, err := fileLock.TryLock()
	if err != nil || !acquired {
		_ = fileLock.Close()
		return true
	}
	_ = fileLock.Unlock()
	return false
}
