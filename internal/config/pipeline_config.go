package config

import (
	"strings"

	"github.com/aleister1102/outboundwatch/internal/common/timeutils"
)

// FolderConfig names the four pipeline folders
type FolderConfig struct {
	VendorExtractUtility string `json:"vendor_extract_utility,omitempty" yaml:"vendor_extract_utility,omitempty" validate:"required"`
	Proprietary          string `json:"proprietary,omitempty" yaml:"proprietary,omitempty" validate:"required"`
	Hold                 string `json:"hold,omitempty" yaml:"hold,omitempty" validate:"required"`
	Drop                 string `json:"drop,omitempty" yaml:"drop,omitempty" validate:"required"`
}

// All returns the folders keyed by role, in pipeline order.
func (fc FolderConfig) All() []NamedFolder {
	return []NamedFolder{
		{Role: "vendor_extract_utility", Path: fc.VendorExtractUtility},
		{Role: "proprietary", Path: fc.Proprietary},
		{Role: "hold", Path: fc.Hold},
		{Role: "drop", Path: fc.Drop},
	}
}

// NamedFolder pairs a folder role with its path
type NamedFolder struct {
	Role string
	Path string
}

// StepWindow is the daily wall-clock window of a step, with an optional deadline.
type StepWindow struct {
	Start    string `json:"start" yaml:"start" validate:"required,timeofday"`
	End      string `json:"end" yaml:"end" validate:"required,timeofday"`
	Deadline string `json:"deadline,omitempty" yaml:"deadline,omitempty" validate:"omitempty,timeofday"`
}

// ProcessConfig describes one monitored file family
type ProcessConfig struct {
	SearchPattern          string `json:"search_pattern" yaml:"search_pattern" validate:"required"`
	RequireTodayDateInName *bool  `json:"require_today_date_in_name,omitempty" yaml:"require_today_date_in_name,omitempty"`
	DateFormat             string `json:"date_format,omitempty" yaml:"date_format,omitempty" validate:"omitempty,dateformat"`
}

// RequiresTodayDate defaults to true when unset.
func (pc ProcessConfig) RequiresTodayDate() bool {
	return pc.RequireTodayDateInName == nil || *pc.RequireTodayDateInName
}

// EffectiveDateFormat defaults to yyyyMMdd when unset.
func (pc ProcessConfig) EffectiveDateFormat() string {
	if strings.TrimSpace(pc.DateFormat) == "" {
		return timeutils.DefaultDateFormat
	}
	return pc.DateFormat
}

// CanonicalStepName maps a case-insensitive step key onto Step1..Step4.
func CanonicalStepName(name string) (string, bool) {
	for _, step := range StepNames {
		if strings.EqualFold(strings.TrimSpace(name), step) {
			return step, true
		}
	}
	return "", false
}
