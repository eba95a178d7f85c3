package infra

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/eliteGoblin/hostmaint/internal/domain"
)

// GopsutilFactsCollector implements domain.FactsCollector using gopsutil.
// Pure data collection: every fact is read-only and failures in one probe
// never hide the others.
type GopsutilFactsCollector struct {
	crashDumpDirs []string
}

// NewFactsCollector creates a facts collector with the platform's default
// crash-dump locations.
func NewFactsCollector() domain.FactsCollector {
	return &GopsutilFactsCollector{crashDumpDirs: defaultCrashDumpDirs()}
}

// NewFactsCollectorWithDumpDirs creates a collector scanning custom dump
// directories (for testing).
func NewFactsCollectorWithDumpDirs(dirs []string) domain.FactsCollector {
	return &GopsutilFactsCollector{crashDumpDirs: dirs}
}

func defaultCrashDumpDirs() []string {
	if runtime.GOOS == "windows" {
		root := os.Getenv("SystemRoot")
		if root == "" {
			root = `C:\Windows`
		}
		return []string{
			filepath.Join(root, "Minidump"),
			filepath.Join(root, "LiveKernelReports"),
		}
	}
	return []string{"/var/crash", "/Library/Logs/DiagnosticReports"}
}

// Collect gathers the host snapshot. Individual probe failures leave their
// section zero-valued rather than failing the whole collection.
func (c *GopsutilFactsCollector) Collect(ctx context.Context) (*domain.HostFacts, error) {
	facts := &domain.HostFacts{
		Environment: environmentMap(os.Environ()),
		CrashDumps:  c.listCrashDumps(),
		Programs:    installedPrograms(),
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		facts.Hostname = info.Hostname
		facts.OS = info.OS
		facts.Platform = info.Platform + " " + info.PlatformVersion
		facts.KernelVersion = info.KernelVersion
		facts.BootTime = time.Unix(int64(info.BootTime), 0)
		facts.Uptime = time.Duration(info.Uptime) * time.Second
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		facts.Memory = domain.MemoryFacts{
			TotalBytes:     vm.Total,
			AvailableBytes: vm.Available,
			UsedPercent:    vm.UsedPercent,
		}
	}

	if parts, err := disk.PartitionsWithContext(ctx, false); err == nil {
		for _, p := range parts {
			vol := domain.VolumeFacts{
				Device:     p.Device,
				Mountpoint: p.Mountpoint,
				Fstype:     p.Fstype,
			}
			if usage, err := disk.UsageWithContext(ctx, p.Mountpoint); err == nil {
				vol.TotalBytes = usage.Total
				vol.FreeBytes = usage.Free
			}
			facts.Volumes = append(facts.Volumes, vol)
		}
	}

	return facts, nil
}

// environmentMap converts KEY=VALUE pairs into a map.
func environmentMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

func (c *GopsutilFactsCollector) listCrashDumps() []string {
	var dumps []string
	for _, dir := range c.crashDumpDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			dumps = append(dumps, filepath.Join(dir, e.Name()))
		}
	}
	return dumps
}

// Ensure GopsutilFactsCollector implements domain.FactsCollector.
var _ domain.FactsCollector = (*GopsutilFactsCollector)(nil)
