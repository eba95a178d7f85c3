package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteGoblin/hostmaint/internal/domain"
)

// TestEveryOperationHasExactlyOneEntry verifies the catalog covers the full
// operation enumeration without duplicates.
func TestEveryOperationHasExactlyOneEntry(t *testing.T) {
	seen := make(map[domain.OperationName]int)
	for _, e := range Entries() {
		seen[e.Name]++
	}

	for _, name := range domain.AllOperationNames() {
		assert.Equal(t, 1, seen[name], "operation %s", name)
	}
	assert.Len(t, seen, len(domain.AllOperationNames()))
}

func TestLookup(t *testing.T) {
	e, ok := Lookup(domain.ComponentStoreScan)
	require.True(t, ok)
	assert.Equal(t, domain.FamilyComponentStoreCheck, e.Family)
	assert.True(t, e.RequiresElevation)

	_, ok = Lookup(domain.OperationName("nope"))
	assert.False(t, ok)
}

// TestResolveAllVerify verifies All under verify-only picks the check half
// of each mode-variant pair.
func TestResolveAllVerify(t *testing.T) {
	resolved, err := Resolve(EntryChecks, domain.SelectAll(), domain.VerifyOnly)
	require.NoError(t, err)

	var names []domain.OperationName
	for _, e := range resolved {
		names = append(names, e.Name)
	}
	assert.Equal(t, []domain.OperationName{
		domain.FileSystemScan,
		domain.SystemFileCheck,
		domain.ComponentStoreScan,
		domain.WindowsUpdateCheck,
	}, names)
}

// TestResolveAllApply verifies All under apply picks the repair half.
func TestResolveAllApply(t *testing.T) {
	resolved, err := Resolve(EntryChecks, domain.SelectAll(), domain.Apply)
	require.NoError(t, err)

	var names []domain.OperationName
	for _, e := range resolved {
		names = append(names, e.Name)
	}
	assert.Equal(t, []domain.OperationName{
		domain.FileSystemScan,
		domain.SystemFileCheck,
		domain.ComponentStoreRepair,
		domain.WindowsUpdateApply,
	}, names)
}

// TestResolveOrderIndependentOfSelectionOrder verifies explicit selections
// come back in catalog order with duplicates removed.
func TestResolveOrderIndependentOfSelectionOrder(t *testing.T) {
	sel := domain.SelectOps(
		domain.WindowsUpdateCheck,
		domain.FileSystemScan,
		domain.SystemFileCheck,
		domain.FileSystemScan,
	)

	resolved, err := Resolve(EntryChecks, sel, domain.VerifyOnly)
	require.NoError(t, err)

	var names []domain.OperationName
	for _, e := range resolved {
		names = append(names, e.Name)
	}
	assert.Equal(t, []domain.OperationName{
		domain.FileSystemScan,
		domain.SystemFileCheck,
		domain.WindowsUpdateCheck,
	}, names)
}

func TestResolveUpdatesEntryPoint(t *testing.T) {
	resolved, err := Resolve(EntryUpdates, domain.SelectAll(), domain.Apply)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, domain.ComponentStoreCleanup, resolved[0].Name)

	// A checks operation cannot be requested through RunUpdates.
	_, err = Resolve(EntryUpdates, domain.SelectOps(domain.FileSystemScan), domain.Apply)
	assert.Error(t, err)
}

func TestResolveUnknownOperation(t *testing.T) {
	_, err := Resolve(EntryChecks, domain.SelectOps(domain.OperationName("bogus")), domain.VerifyOnly)
	assert.Error(t, err)
}

// TestArgsPerMode verifies the argument variant switches with the mode.
func TestArgsPerMode(t *testing.T) {
	e, ok := Lookup(domain.SystemFileCheck)
	require.True(t, ok)
	assert.Equal(t, []string{"/verifyonly"}, e.Args(domain.VerifyOnly))
	assert.Equal(t, []string{"/scannow"}, e.Args(domain.Apply))
}

func TestDefaultToolPath(t *testing.T) {
	path := DefaultToolPath("sfc.exe")
	assert.Contains(t, path, "sfc.exe")
	assert.Contains(t, path, "System32")
}
