//go:build !windows

package infra

import "github.com/eliteGoblin/hostmaint/internal/domain"

// installedPrograms is a no-op outside Windows; program enumeration relies
// on registry traversal.
func installedPrograms() []domain.ProgramInfo {
	return nil
}
