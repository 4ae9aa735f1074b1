package market

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	cases := []struct {
		name      string
		payload   string
		wantFloat float64
		wantValid bool
	}{
		{"number", `{"v": 12.5}`, 12.5, true},
		{"integer", `{"v": 3}`, 3, true},
		{"numeric string", `{"v": "10"}`, 10, true},
		{"garbage string", `{"v": "abc"}`, 0, true},
		{"null", `{"v": null}`, 0, false},
		{"absent", `{}`, 0, false},
		{"bool", `{"v": true}`, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out struct {
				V Amount `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &out))
			assert.Equal(t, tc.wantFloat, out.V.Float)
			assert.Equal(t, tc.wantValid, out.V.Valid)
		})
	}
}

func TestAmountMarshal(t *testing.T) {
	b, err := json.Marshal(Num(7.5))
	require.NoError(t, err)
	assert.Equal(t, "7.5", string(b))

	b, err = json.Marshal(Amount{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
