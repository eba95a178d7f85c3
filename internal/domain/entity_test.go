package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSetResultPopulatesMatchingSlot verifies results land in their own slot.
func TestSetResultPopulatesMatchingSlot(t *testing.T) {
	report := &MaintenanceReport{}

	report.SetResult(OperationResult{
		Name:    SystemFileCheck,
		Outcome: Healthy,
	})

	require.NotNil(t, report.SystemFileCheck)
	assert.Equal(t, SystemFileCheck, report.SystemFileCheck.Name)
	assert.Equal(t, Healthy, report.SystemFileCheck.Outcome)

	// All other slots stay empty.
	assert.Nil(t, report.FileSystemScan)
	assert.Nil(t, report.ComponentStoreScan)
	assert.Nil(t, report.ComponentStoreRepair)
	assert.Nil(t, report.ComponentStoreCleanup)
	assert.Nil(t, report.WindowsUpdateCheck)
	assert.Nil(t, report.WindowsUpdateApply)
}

// TestResultRoundTrip verifies Result returns what SetResult stored for
// every operation name.
func TestResultRoundTrip(t *testing.T) {
	report := &MaintenanceReport{}

	for _, name := range AllOperationNames() {
		report.SetResult(OperationResult{Name: name, Outcome: Healthy})
	}

	for _, name := range AllOperationNames() {
		res := report.Result(name)
		require.NotNil(t, res, "slot %s", name)
		assert.Equal(t, name, res.Name)
	}

	assert.Nil(t, report.Result(OperationName("bogus")))
}

// TestSetResultCopiesValue verifies the report owns its own copy.
func TestSetResultCopiesValue(t *testing.T) {
	report := &MaintenanceReport{}

	res := OperationResult{Name: FileSystemScan, Outcome: NeedsCleanup}
	report.SetResult(res)

	res.Outcome = Healthy
	assert.Equal(t, NeedsCleanup, report.FileSystemScan.Outcome)
}

// TestPopulatedFollowsCatalogOrder verifies Populated order is fixed
// regardless of insertion order.
func TestPopulatedFollowsCatalogOrder(t *testing.T) {
	report := &MaintenanceReport{}
	report.SetResult(OperationResult{Name: WindowsUpdateCheck})
	report.SetResult(OperationResult{Name: FileSystemScan})
	report.SetResult(OperationResult{Name: ComponentStoreScan})

	assert.Equal(t,
		[]OperationName{FileSystemScan, ComponentStoreScan, WindowsUpdateCheck},
		report.Populated())
}

func TestSelection(t *testing.T) {
	all := SelectAll()
	assert.True(t, all.IsAll())
	assert.Empty(t, all.Names())

	some := SelectOps(FileSystemScan, SystemFileCheck)
	assert.False(t, some.IsAll())
	assert.Equal(t, []OperationName{FileSystemScan, SystemFileCheck}, some.Names())

	var zero Selection
	assert.False(t, zero.IsAll())
	assert.Empty(t, zero.Names())
}
