package usecase

import (
	"go.uber.org/zap/zapcore"

	"github.com/eliteGoblin/hostmaint/internal/domain"
)

// Classify maps a tool family and raw exit status to a semantic outcome.
// Pure function: same inputs always yield the same outcome. Exit-status
// vocabularies differ per external tool, so the mapping is centralized here
// and adding a new tool is one more case plus a catalog binding.
//
// Statuses outside a family's documented set classify as UnexpectedFailure;
// no finer-grained meaning is invented for undocumented values.
func Classify(family domain.ToolFamily, exitStatus int) domain.OutcomeKind {
	switch family {
	case domain.FamilyFileSystemCheck:
		switch exitStatus {
		case 0:
			return domain.Healthy
		case 2:
			return domain.NeedsCleanup
		case 3:
			return domain.ContainsErrors
		}
		return domain.UnexpectedFailure

	case domain.FamilyComponentStoreCheck:
		// The check-only component-store tool exits 1 when it finds
		// repairable corruption. Non-fatal; remediation is the caller's call.
		switch exitStatus {
		case 0:
			return domain.Healthy
		case 1:
			return domain.HealthIssuesDetected
		}
		return domain.UnexpectedFailure

	default:
		if exitStatus == 0 {
			return domain.Healthy
		}
		return domain.UnexpectedFailure
	}
}

// Severity returns the log level an outcome is surfaced at. Known non-fatal
// anomalies warn; anything unmapped is error-level; healthy is informational.
func Severity(outcome domain.OutcomeKind) zapcore.Level {
	switch outcome {
	case domain.NeedsCleanup, domain.ContainsErrors, domain.HealthIssuesDetected:
		return zapcore.WarnLevel
	case domain.UnexpectedFailure:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
