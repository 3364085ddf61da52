package domain

import (
	"encoding/json"
	"fmt"
)

// SlotStatus is the closed set of states an hourly slot can be in.
type SlotStatus int

const (
	SlotAvailable SlotStatus = iota
	SlotPast
	SlotTakenByOther
	SlotTakenByViewer
)

var slotStatusNames = map[SlotStatus]string{
	SlotAvailable:     "available",
	SlotPast:          "past",
	SlotTakenByOther:  "takenByOther",
	SlotTakenByViewer: "takenByViewer",
}

func (s SlotStatus) String() string {
	if name, ok := slotStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SlotStatus(%d)", int(s))
}

func (s SlotStatus) MarshalJSON() ([]byte, error) {
	name, ok := slotStatusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown slot status %d", int(s))
	}
	return json.Marshal(name)
}

func (s *SlotStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for status, n := range slotStatusNames {
		if n == name {
			*s = status
			return nil
		}
	}

	return fmt.Errorf("unknown slot status %q", name)
}

type Slot struct {
	RoomID string     `json:"roomId"`
	Hour   string     `json:"hour"`
	Status SlotStatus `json:"status"`
}

// SlotList holds one slot per hour of the day; index is the hour.
type SlotList [HoursPerDay]Slot

// At returns the slot for hour h.
func (l *SlotList) At(h Hour) Slot {
	return l[h]
}

// Bookable reports whether hour h can be booked by the viewer.
func (l *SlotList) Bookable(h Hour) bool {
	return h.Valid() && l[h].Status == SlotAvailable
}
