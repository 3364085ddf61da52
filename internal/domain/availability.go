package domain

// ResolveSlots derives the status of every hourly slot of a room for the
// current day.
//
// Precedence, highest first: past, taken by viewer, taken by other,
// available. A viewer's own booking in an hour that has already passed stays
// past. Viewer events for other rooms are ignored; a nil viewerEvents means
// the viewer has no bookings. Every comparison uses the UTC hour.
func ResolveSlots(roomEvents []Event, referenceHour Hour, viewerEvents []Event, roomID string) SlotList {
	var taken [HoursPerDay]bool
	for _, e := range roomEvents {
		taken[HourOf(e.StartTime)] = true
	}

	var mine [HoursPerDay]bool
	for _, e := range viewerEvents {
		if e.RoomID != roomID {
			continue
		}
		mine[HourOf(e.StartTime)] = true
	}

	var slots SlotList
	for i := range slots {
		h := Hour(i)

		status := SlotAvailable
		switch {
		case h <= referenceHour:
			status = SlotPast
		case mine[h]:
			status = SlotTakenByViewer
		case taken[h]:
			status = SlotTakenByOther
		}

		slots[i] = Slot{
			RoomID: roomID,
			Hour:   h.Label(),
			Status: status,
		}
	}

	return slots
}
