package infra

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/eliteGoblin/hostmaint/internal/domain"
)

// UpdateTool implements domain.UpdateSource by running the update helper
// utility through the tool invoker and parsing its record output.
//
// The helper prints one record per update as pipe-separated fields:
//
//	KB5031354|2023-10 Cumulative Update|642MB
//
// Lines that are not records (progress output, banners) are skipped.
type UpdateTool struct {
	invoker   domain.ToolInvoker
	path      string
	listArgs  []string
	applyArgs []string
	logger    *zap.Logger
}

// NewUpdateTool creates an update source bound to the helper at path.
func NewUpdateTool(invoker domain.ToolInvoker, path string, listArgs, applyArgs []string, logger *zap.Logger) *UpdateTool {
	return &UpdateTool{
		invoker:   invoker,
		path:      path,
		listArgs:  listArgs,
		applyArgs: applyArgs,
		logger:    logger,
	}
}

// ListAvailable enumerates available updates without installing anything.
func (u *UpdateTool) ListAvailable(ctx context.Context) ([]domain.UpdateInfo, *domain.ToolInvocationResult, error) {
	return u.invoke(ctx, u.listArgs)
}

// ApplyAll installs every available update and reports what was applied.
func (u *UpdateTool) ApplyAll(ctx context.Context) ([]domain.UpdateInfo, *domain.ToolInvocationResult, error) {
	return u.invoke(ctx, u.applyArgs)
}

func (u *UpdateTool) invoke(ctx context.Context, args []string) ([]domain.UpdateInfo, *domain.ToolInvocationResult, error) {
	inv, err := u.invoker.Run(ctx, u.path, args...)
	if err != nil {
		return nil, nil, err
	}

	updates := ParseUpdateRecords(inv.OutputLines)
	if u.logger != nil {
		u.logger.Debug("update helper finished",
			zap.Int("exit_status", inv.ExitStatus),
			zap.Int("updates", len(updates)))
	}
	return updates, inv, nil
}

// ParseUpdateRecords extracts update records from helper output lines.
// Malformed lines are skipped; record order is preserved.
func ParseUpdateRecords(lines []string) []domain.UpdateInfo {
	var updates []domain.UpdateInfo
	for _, line := range lines {
		fields := strings.Split(line, "|")
		if len(fields) < 2 {
			continue
		}
		id := strings.TrimSpace(fields[0])
		title := strings.TrimSpace(fields[1])
		if id == "" || title == "" {
			continue
		}
		info := domain.UpdateInfo{ID: id, Title: title}
		if len(fields) > 2 {
			info.Size = strings.TrimSpace(fields[2])
		}
		updates = append(updates, info)
	}
	return updates
}

// Ensure UpdateTool implements domain.UpdateSource.
var _ domain.UpdateSource = (*UpdateTool)(nil)
