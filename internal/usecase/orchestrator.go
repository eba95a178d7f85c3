// Package usecase contains application business logic.
package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eliteGoblin/hostmaint/internal/catalog"
	"github.com/eliteGoblin/hostmaint/internal/domain"
)

// Orchestrator runs a requested subset of maintenance operations and
// aggregates their results into one MaintenanceReport. Operations run
// strictly one after another on the calling goroutine; the orchestrator
// holds no state between calls.
type Orchestrator struct {
	gate      domain.PrivilegeGate
	invoker   domain.ToolInvoker
	updates   domain.UpdateSource
	toolPaths map[string]string
	logger    *zap.Logger
}

// NewOrchestrator creates an orchestrator using the well-known tool paths
// from the catalog.
func NewOrchestrator(
	gate domain.PrivilegeGate,
	invoker domain.ToolInvoker,
	updates domain.UpdateSource,
	logger *zap.Logger,
) *Orchestrator {
	return NewOrchestratorWithPaths(gate, invoker, updates, nil, logger)
}

// NewOrchestratorWithPaths creates an orchestrator with per-tool path
// overrides, keyed by tool executable name. Used by deployments with
// relocated tools and by tests.
func NewOrchestratorWithPaths(
	gate domain.PrivilegeGate,
	invoker domain.ToolInvoker,
	updates domain.UpdateSource,
	toolPaths map[string]string,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		gate:      gate,
		invoker:   invoker,
		updates:   updates,
		toolPaths: toolPaths,
		logger:    logger,
	}
}

// RunChecks runs the selected diagnostic operations and returns the
// aggregate report. Fails with domain.ErrPermissionDenied before any tool
// runs if the selection needs elevation the process does not hold.
func (o *Orchestrator) RunChecks(ctx context.Context, sel domain.Selection, mode domain.Mode) (*domain.MaintenanceReport, error) {
	return o.run(ctx, catalog.EntryChecks, sel, mode)
}

// RunUpdates runs the selected maintenance-action operations. Same contract
// as RunChecks, restricted to the catalog's updates entry point.
func (o *Orchestrator) RunUpdates(ctx context.Context, sel domain.Selection, mode domain.Mode) (*domain.MaintenanceReport, error) {
	return o.run(ctx, catalog.EntryUpdates, sel, mode)
}

func (o *Orchestrator) run(ctx context.Context, ep catalog.EntryPoint, sel domain.Selection, mode domain.Mode) (*domain.MaintenanceReport, error) {
	resolved, err := catalog.Resolve(ep, sel, mode)
	if err != nil {
		return nil, err
	}

	// All-or-nothing precondition: a single privileged operation in the
	// selection gates the entire call, before anything is invoked.
	needsElevation := false
	for _, e := range resolved {
		if e.RequiresElevation {
			needsElevation = true
			break
		}
	}
	if needsElevation && !o.gate.IsElevated() {
		return nil, domain.ErrPermissionDenied
	}

	report := &domain.MaintenanceReport{
		GeneratedAt: time.Now(),
		Mode:        mode,
	}

	for _, e := range resolved {
		res := o.runOperation(ctx, e, mode)
		o.logOutcome(res)
		report.SetResult(res)
	}

	return report, nil
}

// runOperation runs one catalog entry to completion. It never fails the
// call: a tool that cannot be launched is recorded as UnexpectedFailure with
// no output so the remaining operations still run.
func (o *Orchestrator) runOperation(ctx context.Context, e catalog.Entry, mode domain.Mode) domain.OperationResult {
	if e.Family == domain.FamilyUpdate {
		return o.runUpdateOperation(ctx, e)
	}

	path := o.toolPath(e)
	inv, err := o.invoker.Run(ctx, path, e.Args(mode)...)
	if err != nil {
		return domain.OperationResult{
			Name:        e.Name,
			Outcome:     domain.UnexpectedFailure,
			LaunchError: err.Error(),
		}
	}

	return domain.OperationResult{
		Name:       e.Name,
		Outcome:    Classify(e.Family, inv.ExitStatus),
		Invocation: *inv,
	}
}

func (o *Orchestrator) runUpdateOperation(ctx context.Context, e catalog.Entry) domain.OperationResult {
	var (
		updates []domain.UpdateInfo
		inv     *domain.ToolInvocationResult
		err     error
	)

	if e.Name == domain.WindowsUpdateApply {
		updates, inv, err = o.updates.ApplyAll(ctx)
	} else {
		updates, inv, err = o.updates.ListAvailable(ctx)
	}

	if err != nil {
		return domain.OperationResult{
			Name:        e.Name,
			Outcome:     domain.UnexpectedFailure,
			LaunchError: err.Error(),
		}
	}

	return domain.OperationResult{
		Name:       e.Name,
		Outcome:    Classify(e.Family, inv.ExitStatus),
		Invocation: *inv,
		Updates:    updates,
	}
}

func (o *Orchestrator) toolPath(e catalog.Entry) string {
	if p, ok := o.toolPaths[e.Tool]; ok && p != "" {
		return p
	}
	return catalog.DefaultToolPath(e.Tool)
}

// logOutcome emits exactly one log event per completed operation, at the
// severity the classifier assigns to its outcome.
func (o *Orchestrator) logOutcome(res domain.OperationResult) {
	fields := []zap.Field{
		zap.String("operation", string(res.Name)),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("exit_status", res.Invocation.ExitStatus),
	}
	if res.LaunchError != "" {
		fields = append(fields, zap.String("launch_error", res.LaunchError))
	}

	switch Severity(res.Outcome) {
	case zapcore.WarnLevel:
		o.logger.Warn("operation reported anomaly", fields...)
	case zapcore.ErrorLevel:
		o.logger.Error("operation failed", fields...)
	default:
		o.logger.Info("operation healthy", fields...)
	}
}
