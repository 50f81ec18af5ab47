package monitor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/aleister1102/outboundwatch/internal/models"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// Alert conditions, as embedded in de-dup keys.
const (
	conditionMissing         = "Missing"
	conditionSlaRiskInternal = "SlaRiskInternal"
	conditionSlaRiskClient   = "SlaRiskClient"
	conditionSummary         = "Summary"
	conditionStuck           = "Stuck"
	conditionPartial         = "Partial"
)

const x12Extension = ".x12"

const (
	layoutReportDateTime = "2006-01-02 15:04:05"
	layoutReportDate     = "2006-01-02"
	layoutReportTime     = "15:04:05"
)

type recipientGroup struct {
	audience   models.Audience
	recipients []string
}

func (s *Service) itOps() recipientGroup {
	return recipientGroup{models.AudienceItOps, s.cfg.NotificationConfig.EmailGroups.ItOps}
}

func (s *Service) internalTeam() recipientGroup {
	return recipientGroup{models.AudienceInternalTeam, s.cfg.NotificationConfig.EmailGroups.InternalTeam}
}

func (s *Service) client() recipientGroup {
	return recipientGroup{models.AudienceClient, s.cfg.NotificationConfig.EmailGroups.Client}
}

// alert builds and sends one notification keyed by step, condition, process,
// optional file name and today's local date.
func (s *Service) alert(ctx context.Context, step, condition, process, file string, to recipientGroup, severity models.Severity, subject, body string) {
	now := s.clock.Now()
	s.notify(ctx, models.Notification{
		DedupKey:   models.DedupKey(step, condition, process, file, now),
		Audience:   to.audience,
		Recipients: to.recipients,
		Subject:    models.ProcessSubject(process, subject),
		Body:       body,
		Severity:   severity,
		Process:    process,
		Step:       step,
		CreatedAt:  now,
	})
}

// checkVendorIntake looks for today's vendor extract.
func (s *Service) checkVendorIntake(ctx context.Context, process string, proc config.ProcessConfig, log zerolog.Logger) {
	const step = config.StepVendorIntake
	now := s.clock.Now()
	if !s.schedule.InWindow(step, now) {
		log.Debug().Str("step", step).Msg("Outside step window")
		return
	}

	files := s.scanner.List(ctx, s.cfg.Folders.VendorExtractUtility, proc.SearchPattern)
	file, ok := SelectCandidate(files, proc, now)
	if !ok {
		s.alert(ctx, step, conditionMissing, process, "", s.itOps(), models.SeverityWarning,
			"Step 1 file missing",
			fmt.Sprintf("No txt file found in VendorExtractUtility for %s by current checkpoint.", process))
		return
	}

	s.validateFile(ctx, step, process, file, s.itOps(), log)
}

// checkProprietary looks for the proprietary export and checks it against the SLA.
func (s *Service) checkProprietary(ctx context.Context, process string, proc config.ProcessConfig, log zerolog.Logger) {
	const step = config.StepProprietary
	now := s.clock.Now()
	if !s.schedule.InWindow(step, now) {
		log.Debug().Str("step", step).Msg("Outside step window")
		return
	}

	files := s.scanner.List(ctx, s.cfg.Folders.Proprietary, proc.SearchPattern)
	file, ok := SelectCandidate(files, proc, now)
	if !ok {
		s.alert(ctx, step, conditionMissing, process, "", s.internalTeam(), models.SeverityWarning,
			"Step 2 file missing",
			fmt.Sprintf("No proprietary file found for %s. Possible upstream/Tidal issue.", process))
		return
	}

	s.validateFile(ctx, step, process, file, s.internalTeam(), log)

	now = s.clock.Now()
	deadline := s.schedule.Deadline(step, defaultProprietaryDeadline, now)
	estimate := s.estimator.EstimateCompletion(now, file)
	if !s.estimator.IsSlaAtRisk(estimate, deadline) {
		return
	}

	log.Warn().
		Str("step", step).
		Str("file", file.Name).
		Time("estimate", estimate).
		Time("deadline", deadline).
		Msg("SLA at risk")

	body := fmt.Sprintf("Estimated completion %s exceeds SLA deadline %s.",
		estimate.Format(layoutReportDateTime), deadline.Format(layoutReportDateTime))
	s.alert(ctx, step, conditionSlaRiskInternal, process, "", s.internalTeam(), models.SeverityCritical,
		"SLA at risk - raise incident", body)
	s.alert(ctx, step, conditionSlaRiskClient, process, "", s.client(), models.SeverityCritical,
		"SLA breach communication", body)
}

// checkHold looks for today's X12 file in the hold folder.
func (s *Service) checkHold(ctx context.Context, process string, proc config.ProcessConfig, log zerolog.Logger) {
	const step = config.StepHold
	now := s.clock.Now()
	if !s.schedule.InWindow(step, now) {
		log.Debug().Str("step", step).Msg("Outside step window")
		return
	}

	files := filterExtension(s.scanner.List(ctx, s.cfg.Folders.Hold, proc.SearchPattern), x12Extension)
	file, ok := SelectCandidate(files, proc, now)
	if !ok {
		s.alert(ctx, step, conditionMissing, process, "", s.internalTeam(), models.SeverityWarning,
			"HOLD X12 missing",
			fmt.Sprintf("No X12 file found in HOLD for %s.", process))
		return
	}

	s.validateFile(ctx, step, process, file, s.internalTeam(), log)
}

// checkDrop runs every cycle regardless of windows: it reports a missing drop
// file once the deadline has passed, and summarizes the drop file once a day.
func (s *Service) checkDrop(ctx context.Context, process string, proc config.ProcessConfig, log zerolog.Logger) {
	const step = config.StepDrop
	now := s.clock.Now()
	deadline := s.schedule.Deadline(step, defaultDropDeadline, now)

	files := filterExtension(s.scanner.List(ctx, s.cfg.Folders.Drop, proc.SearchPattern), x12Extension)
	file, ok := SelectCandidate(files, proc, now)
	if !ok {
		if s.clock.Now().After(deadline) {
			s.alert(ctx, step, conditionMissing, process, "", s.internalTeam(), models.SeverityWarning,
				"DROP X12 missing before deadline",
				fmt.Sprintf("No DROP file found before SLA cutoff %s.", deadline.Format(layoutReportTime)))
		}
		return
	}

	body := dropSummary(file)
	log.Info().
		Str("step", step).
		Str("size", humanize.IBytes(uint64(file.SizeBytes))).
		Msg("DROP summary => " + strings.ReplaceAll(strings.TrimRight(body, "\n"), "\n", " | "))

	s.alert(ctx, step, conditionSummary, process, "", s.internalTeam(), models.SeverityInfo,
		"DROP file summary", body)
}

func dropSummary(file models.ObservedFile) string {
	var sb strings.Builder
	sb.WriteString("DROP file summary\n")
	fmt.Fprintf(&sb, "File Name: %s\n", file.Name)
	fmt.Fprintf(&sb, "File Size MB: %s\n", strconv.FormatFloat(file.SizeMB(), 'f', -1, 64))
	fmt.Fprintf(&sb, "Date Modified: %s\n", file.ModTime.Format(layoutReportDate))
	fmt.Fprintf(&sb, "Time Modified: %s\n", file.ModTime.Format(layoutReportTime))
	return sb.String()
}

// validateFile runs the stuck, stability and lock checks on a step's
// candidate. The three checks are independent.
func (s *Service) validateFile(ctx context.Context, step, process string, file models.ObservedFile, to recipientGroup, log zerolog.Logger) {
	now := s.clock.Now()
	firstSeen := s.state.FirstSeen(step, process, file.Name, now)
	if now.Sub(firstSeen) > s.cfg.MonitorConfig.StuckFileThreshold() {
		s.alert(ctx, step, conditionStuck, process, file.Name, to, models.SeverityWarning,
			step+" file stuck",
			fmt.Sprintf("File %s appears stuck for over threshold.", file.Name))
	}

	stable := s.checker.IsStable(ctx, file.Path)
	if ctx.Err() != nil {
		return
	}
	locked := s.checker.IsLocked(file.Path)

	if !stable || locked {
		log.Debug().Str("step", step).Str("file", file.Name).Bool("stable", stable).Bool("locked", locked).Msg("File not ready")
		s.alert(ctx, step, conditionPartial, process, file.Name, to, models.SeverityWarning,
			step+" partial/locked file",
			fmt.Sprintf("File %s is not stable yet (stable=%t, locked=%t).", file.Name, stable, locked))
		return
	}

	if !s.state.IsDone(step, process, file.Name) {
		log.Info().Str("step", step).Str("file", file.Name).Msg("File stable and unlocked")
	}
	s.state.MarkDone(step, process, file.Name)
}
