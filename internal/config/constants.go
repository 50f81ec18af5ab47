package config

const (
	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = "logs/monitor.log"
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Monitor Defaults
	DefaultTimeZone                      = "Asia/Kolkata"
	DefaultPollIntervalSeconds           = 30
	DefaultStabilityCheckIntervalSeconds = 15
	DefaultStabilityCheckAttempts        = 3
	DefaultMaxRetries                    = 3
	DefaultRetryDelaySeconds             = 5
	DefaultStuckFileThresholdMinutes     = 10
	DefaultMbPerHourProcessingRatio      = 250.0
	DefaultStateRetentionHours           = 48
	DefaultLowDiskWarningMB              = 512

	// Notification Defaults
	DefaultSMTPPort              = 25
	DefaultSMTPTimeoutMs         = 15000
	DefaultWebhookTimeoutSeconds = 20

	// Process Defaults
	DefaultProcessDateFormat = "yyyyMMdd"

	// Storage Defaults
	DefaultJournalPath = ""
)

// Pipeline step names as used in time_windows keys and de-dup keys.
const (
	StepVendorIntake = "Step1"
	StepProprietary  = "Step2"
	StepHold         = "Step3"
	StepDrop         = "Step4"
)

// StepNames lists the pipeline steps in evaluation order.
var StepNames = []string{StepVendorIntake, StepProprietary, StepHold, StepDrop}

// EnvConfigPath names the environment variable consulted for the config file path.
const EnvConfigPath = "OUTBOUNDWATCH_CONFIG"
