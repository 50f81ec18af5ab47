package config

import (
	"encoding/json"
)

// legacyTopLevelKeys are keys of the flat PascalCase config.json shipped with
// earlier deployments. The current schema only uses snake_case keys.
var legacyTopLevelKeys = []string{
	"TimeZoneId", "PollIntervalSeconds", "StabilityCheckIntervalSeconds", "StabilityCheckAttempts",
	"MaxRetries", "RetryDelaySeconds", "StuckFileThresholdMinutes", "MbPerHourProcessingRatio",
	"LogFilePath", "Folders", "Smtp", "EmailGroups", "TimeWindows", "Processes",
}

type legacyAppConfig struct {
	TimeZoneId                    string
	PollIntervalSeconds           int
	StabilityCheckIntervalSeconds int
	StabilityCheckAttempts        int
	MaxRetries                    int
	RetryDelaySeconds             int
	StuckFileThresholdMinutes     int
	MbPerHourProcessingRatio      float64
	LogFilePath                   string
	Folders                       legacyFolders
	Smtp                          legacySmtp
	EmailGroups                   legacyEmailGroups
	TimeWindows                   map[string]legacyStepWindow
	Processes                     map[string]legacyProcess
}

type legacyFolders struct {
	VendorExtractUtility string
	Proprietary          string
	Hold                 string
	Drop                 string
}

type legacySmtp struct {
	Host                string
	Port                int
	EnableSsl           bool
	UserName            string
	Password            string
	From                string
	TimeoutMilliseconds int
}

type legacyEmailGroups struct {
	ItOps        []string
	InternalTeam []string
	Client       []string
}

type legacyStepWindow struct {
	Start    string
	End      string
	Deadline string
}

type legacyProcess struct {
	SearchPattern          string
	RequireTodayDateInName *bool
	DateFormat             string
}

// isLegacyJSON reports whether data is a JSON object using the legacy key
// schema. Key matching is exact, so snake_case documents never qualify.
func isLegacyJSON(data []byte) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return false
	}
	for _, key := range legacyTopLevelKeys {
		if _, ok := raw[key]; ok {
			return true
		}
	}
	return false
}

// applyLegacyJSON decodes a legacy document over cfg. Keys missing from the
// document keep cfg's values.
func applyLegacyJSON(data []byte, cfg *GlobalConfig) error {
	mc := cfg.MonitorConfig
	smtp := cfg.NotificationConfig.SMTP
	legacy := legacyAppConfig{
		TimeZoneId:                    mc.TimeZone,
		PollIntervalSeconds:           mc.PollIntervalSeconds,
		StabilityCheckIntervalSeconds: mc.StabilityCheckIntervalSeconds,
		StabilityCheckAttempts:        mc.StabilityCheckAttempts,
		MaxRetries:                    mc.MaxRetries,
		RetryDelaySeconds:             mc.RetryDelaySeconds,
		StuckFileThresholdMinutes:     mc.StuckFileThresholdMinutes,
		MbPerHourProcessingRatio:      mc.MbPerHourProcessingRatio,
		LogFilePath:                   cfg.LogConfig.LogFile,
		Smtp:                          legacySmtp{Port: smtp.Port, TimeoutMilliseconds: smtp.TimeoutMillis},
	}
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}

	cfg.MonitorConfig.TimeZone = legacy.TimeZoneId
	cfg.MonitorConfig.PollIntervalSeconds = legacy.PollIntervalSeconds
	cfg.MonitorConfig.StabilityCheckIntervalSeconds = legacy.StabilityCheckIntervalSeconds
	cfg.MonitorConfig.StabilityCheckAttempts = legacy.StabilityCheckAttempts
	cfg.MonitorConfig.MaxRetries = legacy.MaxRetries
	cfg.MonitorConfig.RetryDelaySeconds = legacy.RetryDelaySeconds
	cfg.MonitorConfig.StuckFileThresholdMinutes = legacy.StuckFileThresholdMinutes
	cfg.MonitorConfig.MbPerHourProcessingRatio = legacy.MbPerHourProcessingRatio
	cfg.LogConfig.LogFile = legacy.LogFilePath

	cfg.Folders = FolderConfig(legacy.Folders)
	cfg.NotificationConfig.SMTP = SMTPConfig{
		Host:          legacy.Smtp.Host,
		Port:          legacy.Smtp.Port,
		EnableSSL:     legacy.Smtp.EnableSsl,
		Username:      legacy.Smtp.UserName,
		Password:      legacy.Smtp.Password,
		From:          legacy.Smtp.From,
		TimeoutMillis: legacy.Smtp.TimeoutMilliseconds,
	}
	cfg.NotificationConfig.EmailGroups = EmailGroupsConfig(legacy.EmailGroups)

	for step, w := range legacy.TimeWindows {
		cfg.TimeWindows[step] = StepWindow(w)
	}
	for name, p := range legacy.Processes {
		cfg.Processes[name] = ProcessConfig(p)
	}
	return nil
}
