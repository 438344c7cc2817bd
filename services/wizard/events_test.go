package wizard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Event
	}{
		{
			name: "set_contact",
			raw:  `{"type":"set_contact","email":"a@b.co","mobile":"9876543210"}`,
			want: SetContactEvent{Email: "a@b.co", Mobile: "9876543210"},
		},
		{
			name: "choose_plan",
			raw:  `{"type":"choose_plan","plan":"basics"}`,
			want: ChoosePlanEvent{Plan: "basics"},
		},
		{
			name: "toggle_service",
			raw:  `{"type":"toggle_service","service":"resume review"}`,
			want: ToggleServiceEvent{Service: "resume review"},
		},
		{
			name: "select_date",
			raw:  `{"type":"select_date","date":"2026-03-13"}`,
			want: SelectDateEvent{Date: "2026-03-13"},
		},
		{
			name: "select_time",
			raw:  `{"type":"select_time","slot":"11:30 AM"}`,
			want: SelectTimeEvent{Slot: "11:30 AM"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := DecodeEvent(json.RawMessage(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, ev)
		})
	}
}

func TestDecodeEvent_Unknown(t *testing.T) {
	_, err := DecodeEvent(json.RawMessage(`{"type":"advance"}`))
	assert.Error(t, err, "navigation has dedicated endpoints, not events")

	_, err = DecodeEvent(json.RawMessage(`{"type":"bogus"}`))
	assert.Error(t, err)

	_, err = DecodeEvent(json.RawMessage(`not json`))
	assert.Error(t, err)
}
