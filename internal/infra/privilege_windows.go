//go:build windows

package infra

import (
	"golang.org/x/sys/windows"

	"github.com/eliteGoblin/hostmaint/internal/domain"
)

// OSPrivilegeGate implements domain.PrivilegeGate for Windows.
type OSPrivilegeGate struct{}

// NewPrivilegeGate creates a privilege gate for the current platform.
func NewPrivilegeGate() domain.PrivilegeGate {
	return &OSPrivilegeGate{}
}

// IsElevated reports whether the process token is elevated or the token is a
// member of the Administrators group.
func (g *OSPrivilegeGate) IsElevated() bool {
	token := windows.GetCurrentProcessToken()
	if token.IsElevated() {
		return true
	}

	sid, err := windows.CreateWellKnownSid(windows.WinBuiltinAdministratorsSid)
	if err != nil {
		return false
	}
	member, err := token.IsMember(sid)
	return err == nil && member
}

// Ensure OSPrivilegeGate implements domain.PrivilegeGate.
var _ domain.PrivilegeGate = (*OSPrivilegeGate)(nil)
