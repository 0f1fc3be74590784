package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from    State
		ev      Event
		want    State
		wantErr bool
	}{
		{StateNoFileSelected, EventFileChosen, StateAwaitingPassword, false},
		{StateAwaitingPassword, EventFileChosen, StateAwaitingPassword, false},
		{StateUnlocked, EventFileChosen, StateUnlocked, true},
		{StateAwaitingPassword, EventUnlocked, StateUnlocked, false},
		{StateNoFileSelected, EventUnlocked, StateNoFileSelected, true},
		{StateUnlocked, EventUnlocked, StateUnlocked, true},
		{StateNoFileSelected, EventLocked, StateNoFileSelected, false},
		{StateAwaitingPassword, EventLocked, StateNoFileSelected, false},
		{StateUnlocked, EventLocked, StateNoFileSelected, false},
		{StateUnlocked, EventImported, StateAwaitingPassword, false},
		{StateNoFileSelected, EventImported, StateAwaitingPassword, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.ev.String(), func(t *testing.T) {
			got, err := Transition(tt.from, tt.ev)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidState)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransition_UnknownEvent(t *testing.T) {
	_, err := Transition(StateUnlocked, Event(42))
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, "Event(42)", Event(42).String())
	assert.Equal(t, "State(9)", State(9).String())
}
