package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStatus_JSONNames(t *testing.T) {
	slot := Slot{RoomID: "R1", Hour: "14:00", Status: SlotTakenByViewer}

	data, err := json.Marshal(slot)

	require.NoError(t, err)
	assert.JSONEq(t, `{"roomId":"R1","hour":"14:00","status":"takenByViewer"}`, string(data))
}

func TestSlotStatus_UnmarshalRejectsUnknown(t *testing.T) {
	var s SlotStatus

	require.NoError(t, json.Unmarshal([]byte(`"past"`), &s))
	assert.Equal(t, SlotPast, s)

	assert.Error(t, json.Unmarshal([]byte(`"booked"`), &s))
}

func TestSlotStatus_String(t *testing.T) {
	assert.Equal(t, "available", SlotAvailable.String())
	assert.Equal(t, "takenByOther", SlotTakenByOther.String())
	assert.Equal(t, "SlotStatus(9)", SlotStatus(9).String())
}
