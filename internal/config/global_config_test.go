package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/outboundwatch/internal/common/errorwrapper"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultTimeZone, cfg.MonitorConfig.TimeZone)
	assert.Equal(t, 30, cfg.MonitorConfig.PollIntervalSeconds)
	assert.Equal(t, 15, cfg.MonitorConfig.StabilityCheckIntervalSeconds)
	assert.Equal(t, 3, cfg.MonitorConfig.StabilityCheckAttempts)
	assert.Equal(t, 3, cfg.MonitorConfig.MaxRetries)
	assert.Equal(t, 5, cfg.MonitorConfig.RetryDelaySeconds)
	assert.Equal(t, 10, cfg.MonitorConfig.StuckFileThresholdMinutes)
	assert.Equal(t, 250.0, cfg.MonitorConfig.MbPerHourProcessingRatio)
	assert.True(t, cfg.MonitorConfig.EnableFolderWatchers)
	assert.Equal(t, 25, cfg.NotificationConfig.SMTP.Port)
	assert.Equal(t, 15000, cfg.NotificationConfig.SMTP.TimeoutMillis)
	assert.Equal(t, "logs/monitor.log", cfg.LogConfig.LogFile)
	assert.NotNil(t, cfg.TimeWindows)
	assert.NotNil(t, cfg.Processes)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
	assert.True(t, errorwrapper.IsConfigurationError(err))
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := writeConfigFile(t, "config.json", `{
		"monitor_config": {
			"time_zone": "UTC",
			"poll_interval_seconds": 1,
			"mb_per_hour_processing_ratio": 100
		},
		"folders": {
			"vendor_extract_utility": "/data/vendor",
			"proprietary": "/data/prop",
			"hold": "/data/hold",
			"drop": "/data/drop"
		},
		"notification_config": {
			"email_groups": {
				"it_ops": ["it@example.com"],
				"internal_team": ["team@example.com"],
				"client": ["client@example.com"]
			}
		},
		"time_windows": {
			"step2": {"start": "08:00:00", "end": "11:00:00", "deadline": "10:30:00"}
		},
		"processes": {
			"ACME": {"search_pattern": "*ACME*.txt"}
		}
	}`)

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.MonitorConfig.TimeZone)
	assert.Equal(t, 1, cfg.MonitorConfig.PollIntervalSeconds)
	assert.Equal(t, 100.0, cfg.MonitorConfig.MbPerHourProcessingRatio)
	// untouched sections keep defaults
	assert.Equal(t, 3, cfg.MonitorConfig.StabilityCheckAttempts)
	assert.Equal(t, "/data/hold", cfg.Folders.Hold)
	assert.Equal(t, []string{"it@example.com"}, cfg.NotificationConfig.EmailGroups.ItOps)

	window, ok := cfg.TimeWindows[StepProprietary]
	require.True(t, ok, "step keys are canonicalized")
	assert.Equal(t, "10:30:00", window.Deadline)

	acme := cfg.Processes["ACME"]
	assert.True(t, acme.RequiresTodayDate())
	assert.Equal(t, "yyyyMMdd", acme.EffectiveDateFormat())

	require.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := writeConfigFile(t, "config.yaml", `
log_config:
  log_level: debug
  log_format: json
monitor_config:
  time_zone: India Standard Time
  enable_folder_watchers: false
folders:
  vendor_extract_utility: vendor
  proprietary: prop
  hold: hold
  drop: drop
notification_config:
  webhook_url: https://example.com/webhook
  smtp:
    host: smtp.example.com
    port: 587
    enable_ssl: true
    from: monitor@example.com
time_windows:
  Step1:
    start: "06:00"
    end: "09:00"
processes:
  BETA:
    search_pattern: "*beta*.x12"
    require_today_date_in_name: false
    date_format: "%Y-%m-%d"
storage_config:
  journal_path: data/journal.db
`)

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, "json", cfg.LogConfig.LogFormat)
	assert.False(t, cfg.MonitorConfig.EnableFolderWatchers)
	assert.Equal(t, 587, cfg.NotificationConfig.SMTP.Port)
	assert.True(t, cfg.NotificationConfig.SMTP.Enabled())
	assert.Equal(t, "https://example.com/webhook", cfg.NotificationConfig.WebhookURL)
	assert.Equal(t, "data/journal.db", cfg.StorageConfig.JournalPath)

	beta := cfg.Processes["BETA"]
	assert.False(t, beta.RequiresTodayDate())
	assert.Equal(t, "%Y-%m-%d", beta.EffectiveDateFormat())

	require.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_InvalidContent(t *testing.T) {
	configFile := writeConfigFile(t, "config.json", `{"processes": [`)

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config content")
	assert.True(t, errorwrapper.IsConfigurationError(err))
}

func TestGetConfigPath_EnvVariable(t *testing.T) {
	configFile := writeConfigFile(t, "custom.yaml", "processes: {}\n")
	t.Setenv(EnvConfigPath, configFile)

	assert.Equal(t, configFile, GetConfigPath(""))
	assert.Equal(t, "", GetConfigPath("/nonexistent/other.json"), "explicit path never falls through")
}

func TestMonitorConfigDurations(t *testing.T) {
	mc := NewDefaultMonitorConfig()

	assert.Equal(t, "30s", mc.PollInterval().String())
	assert.Equal(t, "15s", mc.StabilityCheckInterval().String())
	assert.Equal(t, "5s", mc.RetryDelay().String())
	assert.Equal(t, "10m0s", mc.StuckFileThreshold().String())
	assert.Equal(t, "48h0m0s", mc.StateRetention().String())
}

func TestCanonicalStepName(t *testing.T) {
	step, ok := CanonicalStepName("STEP4")
	assert.True(t, ok)
	assert.Equal(t, StepDrop, step)

	_, ok = CanonicalStepName("Step5")
	assert.False(t, ok)
}

func TestLoadGlobalConfig_ExampleFile(t *testing.T) {
	cfg, err := LoadGlobalConfig(filepath.Join("..", "..", "config.example.yaml"), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(cfg))

	window, ok := cfg.TimeWindows[StepDrop]
	require.True(t, ok)
	assert.Equal(t, "09:55:00", window.Deadline)
	assert.Contains(t, cfg.Processes, "834_DAILY")
}

func TestLoadGlobalConfig_LegacyJSONKeys(t *testing.T) {
	configFile := writeConfigFile(t, "config.json", `{
		"DemoMode": false,
		"TimeZoneId": "India Standard Time",
		"PollIntervalSeconds": 45,
		"StuckFileThresholdMinutes": 20,
		"MbPerHourProcessingRatio": 120.5,
		"LogFilePath": "logs/legacy.log",
		"Folders": {
			"VendorExtractUtility": "/data/vendor",
			"Proprietary": "/data/prop",
			"Hold": "/data/hold",
			"Drop": "/data/drop"
		},
		"Smtp": {
			"Host": "smtp.example.com",
			"EnableSsl": true,
			"UserName": "monitor",
			"From": "monitor@example.com"
		},
		"EmailGroups": {
			"ItOps": ["it@example.com"],
			"Client": ["client@example.com"]
		},
		"TimeWindows": {
			"Step4": {"Start": "07:00:00", "End": "10:00:00", "Deadline": "09:45:00"}
		},
		"Processes": {
			"834_DAILY": {"SearchPattern": "*834*"},
			"834_WEEKLY": {"SearchPattern": "*834W*", "RequireTodayDateInName": false, "DateFormat": "yyyy-MM-dd"}
		}
	}`)

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, "India Standard Time", cfg.MonitorConfig.TimeZone)
	assert.Equal(t, 45, cfg.MonitorConfig.PollIntervalSeconds)
	assert.Equal(t, 20, cfg.MonitorConfig.StuckFileThresholdMinutes)
	assert.Equal(t, 120.5, cfg.MonitorConfig.MbPerHourProcessingRatio)
	assert.Equal(t, 3, cfg.MonitorConfig.StabilityCheckAttempts, "absent keys keep defaults")
	assert.Equal(t, "logs/legacy.log", cfg.LogConfig.LogFile)
	assert.Equal(t, "/data/vendor", cfg.Folders.VendorExtractUtility)
	assert.Equal(t, "/data/drop", cfg.Folders.Drop)

	smtp := cfg.NotificationConfig.SMTP
	assert.Equal(t, "smtp.example.com", smtp.Host)
	assert.Equal(t, 25, smtp.Port)
	assert.Equal(t, 15000, smtp.TimeoutMillis)
	assert.True(t, smtp.EnableSSL)
	assert.Equal(t, "monitor", smtp.Username)
	assert.Equal(t, []string{"client@example.com"}, cfg.NotificationConfig.EmailGroups.Client)

	assert.Equal(t, "09:45:00", cfg.TimeWindows[StepDrop].Deadline)

	daily := cfg.Processes["834_DAILY"]
	assert.True(t, daily.RequiresTodayDate())
	assert.Equal(t, "yyyyMMdd", daily.EffectiveDateFormat())
	weekly := cfg.Processes["834_WEEKLY"]
	assert.False(t, weekly.RequiresTodayDate())
	assert.Equal(t, "yyyy-MM-dd", weekly.EffectiveDateFormat())
}

func TestIsLegacyJSON(t *testing.T) {
	assert.True(t, isLegacyJSON([]byte(`{"Processes": {}}`)))
	assert.False(t, isLegacyJSON([]byte(`{"processes": {}}`)))
	assert.False(t, isLegacyJSON([]byte(`[1, 2]`)))
}
