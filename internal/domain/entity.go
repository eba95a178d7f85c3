// Package domain contains core business entities and interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

import (
	"errors"
	"time"
)

// ErrPermissionDenied is returned by the orchestrator when the requested
// selection contains a privileged operation and the current process is not
// elevated. It is raised before any external tool runs.
var ErrPermissionDenied = errors.New("elevation required for requested operations")

// OperationName identifies one diagnostic or remediation operation.
type OperationName string

const (
	FileSystemScan        OperationName = "filesystem-scan"
	SystemFileCheck       OperationName = "system-file-check"
	ComponentStoreScan    OperationName = "component-store-scan"
	ComponentStoreRepair  OperationName = "component-store-repair"
	ComponentStoreCleanup OperationName = "component-store-cleanup"
	WindowsUpdateCheck    OperationName = "windows-update-check"
	WindowsUpdateApply    OperationName = "windows-update-apply"
)

// Mode selects between inspect-only and remediating tool invocations.
type Mode string

const (
	// VerifyOnly inspects without mutating on-disk state.
	VerifyOnly Mode = "verify"
	// Apply actively remediates.
	Apply Mode = "apply"
)

// ToolFamily groups operations that share one exit-status vocabulary.
type ToolFamily string

const (
	FamilyFileSystemCheck         ToolFamily = "filesystem-check"
	FamilySystemFileCheck         ToolFamily = "system-file-check"
	FamilyComponentStoreCheck     ToolFamily = "component-store-check"
	FamilyComponentStoreMaintain  ToolFamily = "component-store-maintain"
	FamilyUpdate                  ToolFamily = "update"
)

// OutcomeKind is the semantic classification of a completed operation,
// independent of the raw exit status.
type OutcomeKind string

const (
	Healthy              OutcomeKind = "healthy"
	NeedsCleanup         OutcomeKind = "needs-cleanup"
	ContainsErrors       OutcomeKind = "contains-errors"
	HealthIssuesDetected OutcomeKind = "health-issues-detected"
	UnexpectedFailure    OutcomeKind = "unexpected-failure"
)

// ToolInvocationResult is the raw capture of one external process run.
// Immutable once produced; owned exclusively by the operation that produced it.
type ToolInvocationResult struct {
	OutputLines []string `yaml:"output_lines,omitempty" json:"output_lines,omitempty"`
	ExitStatus  int      `yaml:"exit_status" json:"exit_status"`
}

// UpdateInfo describes one available or applied update.
type UpdateInfo struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Size  string `yaml:"size,omitempty" json:"size,omitempty"`
}

// OperationResult pairs one operation with its raw invocation capture and
// derived outcome. Created the instant the tool invocation completes and
// never mutated afterward.
type OperationResult struct {
	Name       OperationName        `yaml:"name" json:"name"`
	Outcome    OutcomeKind          `yaml:"outcome" json:"outcome"`
	Invocation ToolInvocationResult `yaml:"invocation" json:"invocation"`

	// Updates carries the parsed update list for update operations only.
	Updates []UpdateInfo `yaml:"updates,omitempty" json:"updates,omitempty"`

	// LaunchError is set when the external tool could not be started at all.
	// The invocation capture is empty in that case.
	LaunchError string `yaml:"launch_error,omitempty" json:"launch_error,omitempty"`
}

// MaintenanceReport is the aggregate result of one orchestrator call.
// A slot is populated only if that operation was requested and survived the
// privilege gate; all other slots stay nil.
type MaintenanceReport struct {
	GeneratedAt time.Time `yaml:"generated_at" json:"generated_at"`
	Mode        Mode      `yaml:"mode" json:"mode"`

	FileSystemScan        *OperationResult `yaml:"file_system_scan,omitempty" json:"file_system_scan,omitempty"`
	SystemFileCheck       *OperationResult `yaml:"system_file_check,omitempty" json:"system_file_check,omitempty"`
	ComponentStoreScan    *OperationResult `yaml:"component_store_scan,omitempty" json:"component_store_scan,omitempty"`
	ComponentStoreRepair  *OperationResult `yaml:"component_store_repair,omitempty" json:"component_store_repair,omitempty"`
	ComponentStoreCleanup *OperationResult `yaml:"component_store_cleanup,omitempty" json:"component_store_cleanup,omitempty"`
	WindowsUpdateCheck    *OperationResult `yaml:"windows_update_check,omitempty" json:"windows_update_check,omitempty"`
	WindowsUpdateApply    *OperationResult `yaml:"windows_update_apply,omitempty" json:"windows_update_apply,omitempty"`
}

// SetResult stores a result in the slot matching its operation name.
func (r *MaintenanceReport) SetResult(res OperationResult) {
	copied := res
	switch res.Name {
	case FileSystemScan:
		r.FileSystemScan = &copied
	case SystemFileCheck:
		r.SystemFileCheck = &copied
	case ComponentStoreScan:
		r.ComponentStoreScan = &copied
	case ComponentStoreRepair:
		r.ComponentStoreRepair = &copied
	case ComponentStoreCleanup:
		r.ComponentStoreCleanup = &copied
	case WindowsUpdateCheck:
		r.WindowsUpdateCheck = &copied
	case WindowsUpdateApply:
		r.WindowsUpdateApply = &copied
	}
}

// Result returns the slot for the given operation, or nil if unpopulated.
func (r *MaintenanceReport) Result(name OperationName) *OperationResult {
	switch name {
	case FileSystemScan:
		return r.FileSystemScan
	case SystemFileCheck:
		return r.SystemFileCheck
	case ComponentStoreScan:
		return r.ComponentStoreScan
	case ComponentStoreRepair:
		return r.ComponentStoreRepair
	case ComponentStoreCleanup:
		return r.ComponentStoreCleanup
	case WindowsUpdateCheck:
		return r.WindowsUpdateCheck
	case WindowsUpdateApply:
		return r.WindowsUpdateApply
	default:
		return nil
	}
}

// AllOperationNames lists every operation in catalog order. Used by report
// consumers that iterate slots.
func AllOperationNames() []OperationName {
	return []OperationName{
		FileSystemScan,
		SystemFileCheck,
		ComponentStoreScan,
		ComponentStoreRepair,
		ComponentStoreCleanup,
		WindowsUpdateCheck,
		WindowsUpdateApply,
	}
}

// Populated returns the names of all populated slots in catalog order.
func (r *MaintenanceReport) Populated() []OperationName {
	var names []OperationName
	for _, n := range AllOperationNames() {
		if r.Result(n) != nil {
			names = append(names, n)
		}
	}
	return names
}

// Selection names the subset of operations an orchestrator call should run.
// The zero value selects nothing; use SelectAll or SelectOps.
type Selection struct {
	all   bool
	names []OperationName
}

// SelectAll requests every operation the catalog defines for the entry point,
// resolved against the call's Mode.
func SelectAll() Selection {
	return Selection{all: true}
}

// SelectOps requests the named operations only.
func SelectOps(names ...OperationName) Selection {
	return Selection{names: names}
}

// IsAll reports whether this selection is the All sentinel.
func (s Selection) IsAll() bool { return s.all }

// Names returns the explicitly selected operation names.
func (s Selection) Names() []OperationName { return s.names }

// HostFacts is the read-only machine snapshot produced by the statistics
// collector. It is a sibling of the maintenance report, never part of it.
type HostFacts struct {
	Hostname      string            `yaml:"hostname" json:"hostname"`
	OS            string            `yaml:"os" json:"os"`
	Platform      string            `yaml:"platform" json:"platform"`
	KernelVersion string            `yaml:"kernel_version" json:"kernel_version"`
	BootTime      time.Time         `yaml:"boot_time" json:"boot_time"`
	Uptime        time.Duration     `yaml:"uptime" json:"uptime"`
	Memory        MemoryFacts       `yaml:"memory" json:"memory"`
	Volumes       []VolumeFacts     `yaml:"volumes" json:"volumes"`
	Environment   map[string]string `yaml:"environment" json:"environment"`
	CrashDumps    []string          `yaml:"crash_dumps,omitempty" json:"crash_dumps,omitempty"`
	Programs      []ProgramInfo     `yaml:"programs,omitempty" json:"programs,omitempty"`
}

// VolumeFacts describes one mounted volume.
type VolumeFacts struct {
	Device     string `yaml:"device" json:"device"`
	Mountpoint string `yaml:"mountpoint" json:"mountpoint"`
	Fstype     string `yaml:"fstype" json:"fstype"`
	TotalBytes uint64 `yaml:"total_bytes" json:"total_bytes"`
	FreeBytes  uint64 `yaml:"free_bytes" json:"free_bytes"`
}

// MemoryFacts describes physical memory usage.
type MemoryFacts struct {
	TotalBytes     uint64  `yaml:"total_bytes" json:"total_bytes"`
	AvailableBytes uint64  `yaml:"available_bytes" json:"available_bytes"`
	UsedPercent    float64 `yaml:"used_percent" json:"used_percent"`
}

// ProgramInfo describes one installed program discovered by the statistics
// collector.
type ProgramInfo struct {
	Name      string `yaml:"name" json:"name"`
	Version   string `yaml:"version,omitempty" json:"version,omitempty"`
	Publisher string `yaml:"publisher,omitempty" json:"publisher,omitempty"`
}
