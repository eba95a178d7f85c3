//go:build integration && !windows

package integration

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/eliteGoblin/hostmaint/internal/domain"
	"github.com/eliteGoblin/hostmaint/internal/infra"
	"github.com/eliteGoblin/hostmaint/internal/usecase"
)

// elevatedGate stands in for the real privilege gate so the suite can run
// without root.
type elevatedGate struct{ elevated bool }

func (g *elevatedGate) IsElevated() bool { return g.elevated }

// writeFakeTool creates an executable shell script standing in for one
// external maintenance tool.
func writeFakeTool(dir, name, script string) string {
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755)
	Expect(err).NotTo(HaveOccurred())
	return path
}

var _ = Describe("Orchestrator", func() {
	var (
		tmpDir    string
		toolPaths map[string]string
		invoker   domain.ToolInvoker
		logger    *zap.Logger
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		invoker = infra.NewToolInvoker()
		logger = zap.NewNop()
		toolPaths = map[string]string{}
	})

	newOrchestrator := func(helperScript string) *usecase.Orchestrator {
		helperPath := writeFakeTool(tmpDir, "wuhelper", helperScript)
		updates := infra.NewUpdateTool(invoker, helperPath,
			[]string{"/list"}, []string{"/install", "/all"}, logger)
		return usecase.NewOrchestratorWithPaths(
			&elevatedGate{elevated: true}, invoker, updates, toolPaths, logger)
	}

	Describe("RunChecks against real processes", func() {
		Context("when every tool reports healthy", func() {
			It("populates every resolved slot with Healthy", func() {
				toolPaths["chkdsk.exe"] = writeFakeTool(tmpDir, "chkdsk", "echo 'scan complete'; exit 0")
				toolPaths["sfc.exe"] = writeFakeTool(tmpDir, "sfc", "exit 0")
				toolPaths["dism.exe"] = writeFakeTool(tmpDir, "dism", "exit 0")

				orch := newOrchestrator("exit 0")
				report, err := orch.RunChecks(context.Background(), domain.SelectAll(), domain.VerifyOnly)
				Expect(err).NotTo(HaveOccurred())

				Expect(report.Populated()).To(HaveLen(4))
				for _, name := range report.Populated() {
					Expect(report.Result(name).Outcome).To(Equal(domain.Healthy))
				}
				Expect(report.FileSystemScan.Invocation.OutputLines).To(ContainElement("scan complete"))
			})
		})

		Context("when the filesystem check finds issues", func() {
			It("classifies exit status 2 as NeedsCleanup", func() {
				toolPaths["chkdsk.exe"] = writeFakeTool(tmpDir, "chkdsk", "echo 'volume dirty'; exit 2")

				orch := newOrchestrator("exit 0")
				report, err := orch.RunChecks(context.Background(),
					domain.SelectOps(domain.FileSystemScan), domain.VerifyOnly)
				Expect(err).NotTo(HaveOccurred())

				Expect(report.FileSystemScan.Outcome).To(Equal(domain.NeedsCleanup))
				Expect(report.FileSystemScan.Invocation.ExitStatus).To(Equal(2))
			})
		})

		Context("when one tool binary is missing", func() {
			It("records the launch failure and still runs the rest", func() {
				toolPaths["chkdsk.exe"] = filepath.Join(tmpDir, "no-such-tool")
				toolPaths["sfc.exe"] = writeFakeTool(tmpDir, "sfc", "exit 0")

				orch := newOrchestrator("exit 0")
				report, err := orch.RunChecks(context.Background(),
					domain.SelectOps(domain.FileSystemScan, domain.SystemFileCheck), domain.VerifyOnly)
				Expect(err).NotTo(HaveOccurred())

				Expect(report.FileSystemScan.Outcome).To(Equal(domain.UnexpectedFailure))
				Expect(report.FileSystemScan.LaunchError).NotTo(BeEmpty())
				Expect(report.FileSystemScan.Invocation.OutputLines).To(BeEmpty())
				Expect(report.SystemFileCheck.Outcome).To(Equal(domain.Healthy))
			})
		})

		Context("when the update helper lists updates", func() {
			It("carries the parsed records into the report slot", func() {
				orch := newOrchestrator(`echo 'KB5031354|2023-10 Cumulative Update|642MB'
echo 'KB890830|Malicious Software Removal Tool'
exit 0`)

				report, err := orch.RunChecks(context.Background(),
					domain.SelectOps(domain.WindowsUpdateCheck), domain.VerifyOnly)
				Expect(err).NotTo(HaveOccurred())

				Expect(report.WindowsUpdateCheck.Outcome).To(Equal(domain.Healthy))
				Expect(report.WindowsUpdateCheck.Updates).To(HaveLen(2))
				Expect(report.WindowsUpdateCheck.Updates[0].ID).To(Equal("KB5031354"))
			})
		})

		Context("when the caller lacks elevation", func() {
			It("denies the whole call without running anything", func() {
				marker := filepath.Join(tmpDir, "ran")
				toolPaths["dism.exe"] = writeFakeTool(tmpDir, "dism", "touch "+marker+"; exit 0")

				updates := infra.NewUpdateTool(invoker, filepath.Join(tmpDir, "absent"), nil, nil, logger)
				orch := usecase.NewOrchestratorWithPaths(
					&elevatedGate{elevated: false}, invoker, updates, toolPaths, logger)

				report, err := orch.RunChecks(context.Background(),
					domain.SelectOps(domain.ComponentStoreScan), domain.VerifyOnly)

				Expect(err).To(MatchError(domain.ErrPermissionDenied))
				Expect(report).To(BeNil())
				Expect(marker).NotTo(BeAnExistingFile())
			})
		})
	})

	Describe("verify-only idempotence", func() {
		It("returns the same outcome across repeated runs", func() {
			toolPaths["chkdsk.exe"] = writeFakeTool(tmpDir, "chkdsk", "exit 3")
			orch := newOrchestrator("exit 0")

			for i := 0; i < 3; i++ {
				report, err := orch.RunChecks(context.Background(),
					domain.SelectOps(domain.FileSystemScan), domain.VerifyOnly)
				Expect(err).NotTo(HaveOccurred())
				Expect(report.FileSystemScan.Outcome).To(Equal(domain.ContainsErrors))
			}
		})
	})

	Describe("RunUpdates", func() {
		It("runs the component store cleanup and nothing else", func() {
			toolPaths["dism.exe"] = writeFakeTool(tmpDir, "dism", "echo 'cleanup done'; exit 0")

			orch := newOrchestrator("exit 0")
			report, err := orch.RunUpdates(context.Background(), domain.SelectAll(), domain.Apply)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Populated()).To(Equal([]domain.OperationName{domain.ComponentStoreCleanup}))
			Expect(report.ComponentStoreCleanup.Outcome).To(Equal(domain.Healthy))
		})
	})
})
