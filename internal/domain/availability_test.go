package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, raw string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, raw)
	require.NoError(t, err)
	return ts
}

func roomEvent(t *testing.T, start string) Event {
	t.Helper()
	return Event{StartTime: mustTime(t, start), RoomID: "R1"}
}

func viewerEvent(t *testing.T, start, roomID string) Event {
	t.Helper()
	return Event{StartTime: mustTime(t, start), RoomID: roomID}
}

func TestResolveSlots_AlwaysTwentyFourOrderedHours(t *testing.T) {
	for ref := Hour(0); ref < HoursPerDay; ref++ {
		slots := ResolveSlots(nil, ref, nil, "R1")

		require.Len(t, slots, HoursPerDay)
		for i, s := range slots {
			assert.Equal(t, fmt.Sprintf("%02d:00", i), s.Hour)
			assert.Equal(t, "R1", s.RoomID)
		}
	}
}

func TestResolveSlots_PastUpToAndIncludingReferenceHour(t *testing.T) {
	events := []Event{roomEvent(t, "2024-01-01T03:00:00Z")}
	mine := []Event{viewerEvent(t, "2024-01-01T05:00:00Z", "R1")}

	slots := ResolveSlots(events, Hour(9), mine, "R1")

	for h := 0; h <= 9; h++ {
		assert.Equal(t, SlotPast, slots[h].Status, "hour %d", h)
	}
	for h := 10; h < HoursPerDay; h++ {
		assert.NotEqual(t, SlotPast, slots[h].Status, "hour %d", h)
	}
}

func TestResolveSlots_RoomEventMarksTakenByOther(t *testing.T) {
	events := []Event{roomEvent(t, "2024-01-01T14:00:00Z")}

	slots := ResolveSlots(events, Hour(10), []Event{}, "R1")

	for h := 0; h <= 10; h++ {
		assert.Equal(t, SlotPast, slots[h].Status, "hour %d", h)
	}
	assert.Equal(t, SlotTakenByOther, slots[14].Status)
	for h := 11; h < HoursPerDay; h++ {
		if h == 14 {
			continue
		}
		assert.Equal(t, SlotAvailable, slots[h].Status, "hour %d", h)
	}
}

func TestResolveSlots_ViewerBookingOverridesTakenByOther(t *testing.T) {
	events := []Event{roomEvent(t, "2024-01-01T14:00:00Z")}
	mine := []Event{viewerEvent(t, "2024-01-01T14:00:00Z", "R1")}

	slots := ResolveSlots(events, Hour(10), mine, "R1")

	assert.Equal(t, SlotTakenByViewer, slots[14].Status)
}

func TestResolveSlots_ViewerBookingWithoutRoomEvent(t *testing.T) {
	mine := []Event{viewerEvent(t, "2024-01-01T20:00:00Z", "R1")}

	slots := ResolveSlots(nil, Hour(10), mine, "R1")

	assert.Equal(t, SlotTakenByViewer, slots[20].Status)
}

func TestResolveSlots_ViewerEventsForOtherRoomsIgnored(t *testing.T) {
	events := []Event{roomEvent(t, "2024-01-01T14:00:00Z")}
	mine := []Event{
		viewerEvent(t, "2024-01-01T14:00:00Z", "R2"),
		viewerEvent(t, "2024-01-01T16:00:00Z", "R2"),
	}

	withOther := ResolveSlots(events, Hour(10), mine, "R1")
	without := ResolveSlots(events, Hour(10), nil, "R1")

	assert.Equal(t, without, withOther)
	assert.Equal(t, SlotTakenByOther, withOther[14].Status)
	assert.Equal(t, SlotAvailable, withOther[16].Status)
}

func TestResolveSlots_PastWinsOverViewerBooking(t *testing.T) {
	mine := []Event{viewerEvent(t, "2024-01-01T08:00:00Z", "R1")}

	slots := ResolveSlots(nil, Hour(10), mine, "R1")

	assert.Equal(t, SlotPast, slots[8].Status)
}

func TestResolveSlots_NormalisesToUTC(t *testing.T) {
	// 16:00 at UTC+02:00 is 14:00 UTC.
	events := []Event{{StartTime: mustTime(t, "2024-01-01T16:00:00+02:00"), RoomID: "R1"}}
	mine := []Event{{StartTime: mustTime(t, "2024-01-01T12:30:00-05:00"), RoomID: "R1"}}

	slots := ResolveSlots(events, Hour(10), mine, "R1")

	assert.Equal(t, SlotTakenByOther, slots[14].Status)
	assert.Equal(t, SlotAvailable, slots[16].Status)
	assert.Equal(t, SlotTakenByViewer, slots[17].Status)
}

func TestResolveSlots_Idempotent(t *testing.T) {
	events := []Event{roomEvent(t, "2024-01-01T14:00:00Z"), roomEvent(t, "2024-01-01T22:00:00Z")}
	mine := []Event{viewerEvent(t, "2024-01-01T22:00:00Z", "R1")}

	first := ResolveSlots(events, Hour(10), mine, "R1")
	second := ResolveSlots(events, Hour(10), mine, "R1")

	assert.Equal(t, first, second)
}

func TestResolveSlots_LastHourLeavesEverythingPast(t *testing.T) {
	events := []Event{roomEvent(t, "2024-01-01T23:00:00Z")}

	slots := ResolveSlots(events, Hour(23), nil, "R1")

	for _, s := range slots {
		assert.Equal(t, SlotPast, s.Status)
	}
}

func TestSlotList_Bookable(t *testing.T) {
	events := []Event{roomEvent(t, "2024-01-01T14:00:00Z")}
	slots := ResolveSlots(events, Hour(10), nil, "R1")

	assert.False(t, slots.Bookable(Hour(9)))
	assert.False(t, slots.Bookable(Hour(14)))
	assert.True(t, slots.Bookable(Hour(15)))
	assert.False(t, slots.Bookable(Hour(24)))
	assert.Equal(t, "15:00", slots.At(Hour(15)).Hour)
}
