package config

import (
	"time"
)

// MonitorConfig defines the tunables of the pipeline poll loop
type MonitorConfig struct {
	TimeZone                      string  `json:"time_zone,omitempty" yaml:"time_zone,omitempty" validate:"required,zonename"`
	PollIntervalSeconds           int     `json:"poll_interval_seconds,omitempty" yaml:"poll_interval_seconds,omitempty" validate:"min=1"`
	StabilityCheckIntervalSeconds int     `json:"stability_check_interval_seconds,omitempty" yaml:"stability_check_interval_seconds,omitempty" validate:"min=0"`
	StabilityCheckAttempts        int     `json:"stability_check_attempts,omitempty" yaml:"stability_check_attempts,omitempty" validate:"min=1"`
	MaxRetries                    int     `json:"max_retries,omitempty" yaml:"max_retries,omitempty" validate:"min=0,max=20"`
	RetryDelaySeconds             int     `json:"retry_delay_seconds,omitempty" yaml:"retry_delay_seconds,omitempty" validate:"min=0"`
	StuckFileThresholdMinutes     int     `json:"stuck_file_threshold_minutes,omitempty" yaml:"stuck_file_threshold_minutes,omitempty" validate:"min=1"`
	MbPerHourProcessingRatio      float64 `json:"mb_per_hour_processing_ratio,omitempty" yaml:"mb_per_hour_processing_ratio,omitempty"`
	MaxCycles                     int     `json:"max_cycles,omitempty" yaml:"max_cycles,omitempty" validate:"min=0"`
	StateRetentionHours           int     `json:"state_retention_hours,omitempty" yaml:"state_retention_hours,omitempty" validate:"min=0"`
	EnableFolderWatchers          bool    `json:"enable_folder_watchers" yaml:"enable_folder_watchers"`
	LowDiskWarningMB              int     `json:"low_disk_warning_mb,omitempty" yaml:"low_disk_warning_mb,omitempty" validate:"min=0"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		TimeZone:                      DefaultTimeZone,
		PollIntervalSeconds:           DefaultPollIntervalSeconds,
		StabilityCheckIntervalSeconds: DefaultStabilityCheckIntervalSeconds,
		StabilityCheckAttempts:        DefaultStabilityCheckAttempts,
		MaxRetries:                    DefaultMaxRetries,
		RetryDelaySeconds:             DefaultRetryDelaySeconds,
		StuckFileThresholdMinutes:     DefaultStuckFileThresholdMinutes,
		MbPerHourProcessingRatio:      DefaultMbPerHourProcessingRatio,
		MaxCycles:                     0, // 0 means run indefinitely
		StateRetentionHours:           DefaultStateRetentionHours,
		EnableFolderWatchers:          true,
		LowDiskWarningMB:              DefaultLowDiskWarningMB,
	}
}

func (mc MonitorConfig) PollInterval() time.Duration {
	return time.Duration(mc.PollIntervalSeconds) * time.Second
}

func (mc MonitorConfig) StabilityCheckInterval() time.Duration {
	return time.Duration(mc.StabilityCheckIntervalSeconds) * time.Second
}

func (mc MonitorConfig) RetryDelay() time.Duration {
	return time.Duration(mc.RetryDelaySeconds) * time.Second
}

func (mc MonitorConfig) StuckFileThreshold() time.Duration {
	return time.Duration(mc.StuckFileThresholdMinutes) * time.Minute
}

// StateRetention returns 0 when state is never evicted.
func (mc MonitorConfig) StateRetention() time.Duration {
	return time.Duration(mc.StateRetentionHours) * time.Hour
}
