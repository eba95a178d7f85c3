//go:build !windows

package infra

import (
	"os"

	"github.com/eliteGoblin/hostmaint/internal/domain"
)

// OSPrivilegeGate implements domain.PrivilegeGate for Unix-like systems.
type OSPrivilegeGate struct{}

// NewPrivilegeGate creates a privilege gate for the current platform.
func NewPrivilegeGate() domain.PrivilegeGate {
	return &OSPrivilegeGate{}
}

// IsElevated reports whether the process runs with an effective UID of root.
func (g *OSPrivilegeGate) IsElevated() bool {
	return os.Geteuid() == 0
}

// Ensure OSPrivilegeGate implements domain.PrivilegeGate.
var _ domain.PrivilegeGate = (*OSPrivilegeGate)(nil)
