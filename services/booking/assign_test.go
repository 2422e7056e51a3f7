package booking

import (
	"testing"
	"time"

	"fairway/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var bkk = time.FixedZone("ICT", 7*3600)

func at(h, m int) time.Time {
	return time.Date(2026, 9, 15, h, m, 0, 0, bkk)
}

func threeBays() []models.Bay {
	return []models.Bay{
		{ID: "bay-1", DisplayName: "Bay 1", CalendarID: "cal-1"},
		{ID: "bay-2", DisplayName: "Bay 2", CalendarID: "cal-2"},
		{ID: "bay-3", DisplayName: "Bay 3", CalendarID: "cal-3"},
	}
}

func setOf(intervals map[string][]models.BusyInterval) *models.BusyIntervalSet {
	return models.NewBusyIntervalSet("2026-09-15", intervals, zap.NewNop())
}

func TestAssignBay_PrefersFirstFreeBayInConfigOrder(t *testing.T) {
	set := setOf(map[string][]models.BusyInterval{
		"bay-1": {{BayID: "bay-1", Start: at(13, 0), End: at(15, 0)}},
	})

	bay, ok := AssignBay(at(13, 0), at(14, 0), threeBays(), set)
	require.True(t, ok)
	assert.Equal(t, "bay-2", bay.ID)

	// A free first bay always wins.
	bay, ok = AssignBay(at(10, 0), at(12, 0), threeBays(), set)
	require.True(t, ok)
	assert.Equal(t, "bay-1", bay.ID)
}

func TestAssignBay_Deterministic(t *testing.T) {
	set := setOf(map[string][]models.BusyInterval{
		"bay-1": {{BayID: "bay-1", Start: at(13, 0), End: at(15, 0)}},
	})
	for i := 0; i < 10; i++ {
		bay, ok := AssignBay(at(14, 0), at(15, 0), threeBays(), set)
		require.True(t, ok)
		assert.Equal(t, "bay-2", bay.ID)
	}
}

func TestAssignBay_AbuttingIntervalDoesNotConflict(t *testing.T) {
	set := setOf(map[string][]models.BusyInterval{
		"bay-1": {
			{BayID: "bay-1", Start: at(12, 0), End: at(14, 0)},
			{BayID: "bay-1", Start: at(15, 0), End: at(17, 0)},
		},
	})

	// Exactly fills the gap: [14:00, 15:00) touches both neighbours.
	bay, ok := AssignBay(at(14, 0), at(15, 0), threeBays(), set)
	require.True(t, ok)
	assert.Equal(t, "bay-1", bay.ID)
}

func TestAssignBay_PartialOverlapConflicts(t *testing.T) {
	set := setOf(map[string][]models.BusyInterval{
		"bay-1": {{BayID: "bay-1", Start: at(12, 0), End: at(14, 0)}},
		"bay-2": {{BayID: "bay-2", Start: at(13, 0), End: at(15, 0)}},
		"bay-3": {{BayID: "bay-3", Start: at(13, 30), End: at(14, 30)}},
	})

	_, ok := AssignBay(at(13, 0), at(14, 0), threeBays(), set)
	assert.False(t, ok)
}

func TestAssignBay_NoBayAvailable(t *testing.T) {
	full := map[string][]models.BusyInterval{}
	for _, b := range threeBays() {
		full[b.ID] = []models.BusyInterval{{BayID: b.ID, Start: at(10, 0), End: at(23, 0)}}
	}
	_, ok := AssignBay(at(12, 0), at(13, 0), threeBays(), setOf(full))
	assert.False(t, ok)
}
