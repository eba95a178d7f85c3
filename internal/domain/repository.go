package domain

import "context"

// ToolInvoker runs one external maintenance tool to completion.
// Implementation: os/exec, synchronous.
type ToolInvoker interface {
	// Run blocks until the process exits and returns its captured output
	// lines and exit status. A non-zero exit status is ordinary data, not an
	// error; Run fails only when the executable cannot be launched at all.
	Run(ctx context.Context, path string, args ...string) (*ToolInvocationResult, error)
}

// PrivilegeGate answers whether the current execution context holds
// elevated rights. Pure query, no side effects, no caching.
type PrivilegeGate interface {
	IsElevated() bool
}

// UpdateSource is the update-utility collaborator consumed by the update
// operations. Each call returns the parsed update list together with the raw
// invocation capture as one atomic value.
type UpdateSource interface {
	// ListAvailable enumerates updates without installing anything.
	ListAvailable(ctx context.Context) ([]UpdateInfo, *ToolInvocationResult, error)

	// ApplyAll installs every available update and reports what was applied.
	ApplyAll(ctx context.Context) ([]UpdateInfo, *ToolInvocationResult, error)
}

// FactsCollector gathers read-only diagnostic facts about the host.
// Sibling of the orchestrator at the same API layer; the orchestrator never
// calls it.
type FactsCollector interface {
	Collect(ctx context.Context) (*HostFacts, error)
}

// BundleDownloader fetches a third-party utility bundle and unpacks its
// executables into a local tools directory.
type BundleDownloader interface {
	// Fetch downloads the archive at url and extracts it into destDir,
	// returning the paths of the extracted files.
	Fetch(ctx context.Context, url, destDir string) ([]string, error)
}
