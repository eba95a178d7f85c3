// Package catalog defines the static operation catalog: the fixed set of
// named maintenance operations, each bound to an external tool, its argument
// variant per mode, and its elevation requirement. Pure configuration data
// with no behavior, so the orchestrator's iteration logic is identical for
// every operation.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eliteGoblin/hostmaint/internal/domain"
)

// EntryPoint identifies which orchestrator entry point an operation belongs to.
type EntryPoint string

const (
	// EntryChecks covers the diagnostic operations run by RunChecks.
	EntryChecks EntryPoint = "checks"
	// EntryUpdates covers the maintenance-action operations run by RunUpdates.
	EntryUpdates EntryPoint = "updates"
)

// Entry binds one operation name to its tool invocation pattern.
type Entry struct {
	Name   domain.OperationName
	Family domain.ToolFamily

	// Tool is the executable file name under the system tools directory.
	Tool string

	VerifyArgs []string
	ApplyArgs  []string

	RequiresElevation bool
	EntryPoint        EntryPoint

	// Modes lists the modes under which an All selection resolves to this
	// operation. Mode-variant pairs (scan/repair, update check/apply) list
	// exactly one mode each so All never selects both halves of a pair.
	Modes []domain.Mode
}

// Args returns the argument variant for the given mode.
func (e Entry) Args(mode domain.Mode) []string {
	if mode == domain.Apply {
		return e.ApplyArgs
	}
	return e.VerifyArgs
}

// SelectedIn reports whether an All selection under mode includes this entry.
func (e Entry) SelectedIn(mode domain.Mode) bool {
	for _, m := range e.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// entries is the full catalog in its fixed, deterministic iteration order.
// The order is stable across runs and independent of caller selection order.
var entries = []Entry{
	{
		Name:       domain.FileSystemScan,
		Family:     domain.FamilyFileSystemCheck,
		Tool:       "chkdsk.exe",
		VerifyArgs: []string{"/scan"},
		ApplyArgs:  []string{"/f"},
		EntryPoint: EntryChecks,
		Modes:      []domain.Mode{domain.VerifyOnly, domain.Apply},
	},
	{
		Name:              domain.SystemFileCheck,
		Family:            domain.FamilySystemFileCheck,
		Tool:              "sfc.exe",
		VerifyArgs:        []string{"/verifyonly"},
		ApplyArgs:         []string{"/scannow"},
		RequiresElevation: true,
		EntryPoint:        EntryChecks,
		Modes:             []domain.Mode{domain.VerifyOnly, domain.Apply},
	},
	{
		Name:              domain.ComponentStoreScan,
		Family:            domain.FamilyComponentStoreCheck,
		Tool:              "dism.exe",
		VerifyArgs:        []string{"/online", "/cleanup-image", "/scanhealth"},
		ApplyArgs:         []string{"/online", "/cleanup-image", "/scanhealth"},
		RequiresElevation: true,
		EntryPoint:        EntryChecks,
		Modes:             []domain.Mode{domain.VerifyOnly},
	},
	{
		Name:              domain.ComponentStoreRepair,
		Family:            domain.FamilyComponentStoreMaintain,
		Tool:              "dism.exe",
		VerifyArgs:        []string{"/online", "/cleanup-image", "/restorehealth"},
		ApplyArgs:         []string{"/online", "/cleanup-image", "/restorehealth"},
		RequiresElevation: true,
		EntryPoint:        EntryChecks,
		Modes:             []domain.Mode{domain.Apply},
	},
	{
		Name:              domain.ComponentStoreCleanup,
		Family:            domain.FamilyComponentStoreMaintain,
		Tool:              "dism.exe",
		VerifyArgs:        []string{"/online", "/cleanup-image", "/analyzecomponentstore"},
		ApplyArgs:         []string{"/online", "/cleanup-image", "/startcomponentcleanup"},
		RequiresElevation: true,
		EntryPoint:        EntryUpdates,
		Modes:             []domain.Mode{domain.VerifyOnly, domain.Apply},
	},
	{
		Name:       domain.WindowsUpdateCheck,
		Family:     domain.FamilyUpdate,
		Tool:       "wuhelper.exe",
		VerifyArgs: []string{"/list"},
		ApplyArgs:  []string{"/list"},
		EntryPoint: EntryChecks,
		Modes:      []domain.Mode{domain.VerifyOnly},
	},
	{
		Name:              domain.WindowsUpdateApply,
		Family:            domain.FamilyUpdate,
		Tool:              "wuhelper.exe",
		VerifyArgs:        []string{"/install", "/all"},
		ApplyArgs:         []string{"/install", "/all"},
		RequiresElevation: true,
		EntryPoint:        EntryChecks,
		Modes:             []domain.Mode{domain.Apply},
	},
}

// Entries returns the full catalog in fixed order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup returns the catalog entry for an operation name.
func Lookup(name domain.OperationName) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Resolve expands a selection against the catalog for one entry point.
// An All selection yields every entry-point operation whose Modes include
// mode; an explicit selection yields exactly the named operations. The
// returned slice follows catalog order regardless of selection order, with
// duplicates removed.
func Resolve(ep EntryPoint, sel domain.Selection, mode domain.Mode) ([]Entry, error) {
	if sel.IsAll() {
		var out []Entry
		for _, e := range entries {
			if e.EntryPoint == ep && e.SelectedIn(mode) {
				out = append(out, e)
			}
		}
		return out, nil
	}

	requested := make(map[domain.OperationName]bool, len(sel.Names()))
	for _, name := range sel.Names() {
		e, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown operation: %s", name)
		}
		if e.EntryPoint != ep {
			return nil, fmt.Errorf("operation %s is not a %s operation", name, ep)
		}
		requested[name] = true
	}

	var out []Entry
	for _, e := range entries {
		if requested[e.Name] {
			out = append(out, e)
		}
	}
	return out, nil
}

// DefaultToolPath returns the well-known installation path of a tool under
// the system directory. Overridable per deployment through the config file.
func DefaultToolPath(tool string) string {
	root := os.Getenv("SystemRoot")
	if root == "" {
		root = `C:\Windows`
	}
	return filepath.Join(root, "System32", tool)
}
