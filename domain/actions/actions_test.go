package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoutesOnName(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Action
	}{
		{
			name:    "skip turn",
			payload: `{"name":"skip_turn","card_indices":[2]}`,
			want:    SkipTurn{CardIndices: []int{2}},
		},
		{
			name:    "lay egg",
			payload: `{"name":"lay_egg","card_indices":[0,1,3]}`,
			want:    LayEgg{CardIndices: []int{0, 1, 3}},
		},
		{
			name:    "hatch chick",
			payload: `{"name":"hatch_chick","card_indices":[1,2]}`,
			want:    HatchChick{CardIndices: []int{1, 2}},
		},
		{
			name:    "steal egg",
			payload: `{"name":"steal_egg","card_indices":[0],"target":42}`,
			want:    StealEgg{CardIndices: []int{0}, Target: 42},
		},
		{
			name:    "defend",
			payload: `{"name":"fox_defend","card_indices":[1,3],"defender":7,"does_defend":true}`,
			want:    DefendEgg{CardIndices: []int{1, 3}, Defender: 7, DoesDefend: true},
		},
		{
			name:    "break egg",
			payload: `{"name":"break_egg","card_indices":[0,2],"target":9}`,
			want:    BreakEgg{CardIndices: []int{0, 2}, Target: 9},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse([]byte(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseUnknownAction(t *testing.T) {
	_, err := Parse([]byte(`{"name":"cast_spell","card_indices":[0]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action")
}

func TestParseMalformedPayload(t *testing.T) {
	_, err := Parse([]byte(`{"name":`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"name":"steal_egg","card_indices":"nope"}`))
	assert.Error(t, err)
}
