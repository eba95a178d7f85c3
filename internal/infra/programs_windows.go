//go:build windows

package infra

import (
	"golang.org/x/sys/windows/registry"

	"github.com/eliteGoblin/hostmaint/internal/domain"
)

// uninstallKeys are the registry locations enumerated for installed
// programs, covering both 64-bit and 32-bit installations.
var uninstallKeys = []string{
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
}

// installedPrograms traverses the uninstall registry keys and returns one
// entry per program that publishes a display name.
func installedPrograms() []domain.ProgramInfo {
	var programs []domain.ProgramInfo
	for _, keyPath := range uninstallKeys {
		key, err := registry.OpenKey(registry.LOCAL_MACHINE, keyPath, registry.READ)
		if err != nil {
			continue
		}

		subkeys, err := key.ReadSubKeyNames(-1)
		if err != nil {
			key.Close()
			continue
		}

		for _, name := range subkeys {
			sub, err := registry.OpenKey(key, name, registry.QUERY_VALUE)
			if err != nil {
				continue
			}
			display, _, err := sub.GetStringValue("DisplayName")
			if err != nil || display == "" {
				sub.Close()
				continue
			}
			version, _, _ := sub.GetStringValue("DisplayVersion")
			publisher, _, _ := sub.GetStringValue("Publisher")
			sub.Close()

			programs = append(programs, domain.ProgramInfo{
				Name:      display,
				Version:   version,
				Publisher: publisher,
			})
		}
		key.Close()
	}
	return programs
}
