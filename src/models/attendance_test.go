package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthyUnmarshal(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`-0.5`, true},
		{`"yes"`, true},
		{`"false"`, true},
		{`""`, false},
		{`{}`, true},
		{`[]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var got Truthy
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got.Bool())
		})
	}
}

func TestAttendanceInputStatusPresence(t *testing.T) {
	t.Run("null status is sent as absent", func(t *testing.T) {
		var in AttendanceInput
		require.NoError(t, json.Unmarshal([]byte(`{"day":0,"status":null}`), &in))
		require.NotNil(t, in.Day)
		assert.Equal(t, 0, *in.Day)
		assert.True(t, in.Status.Set)
		assert.False(t, in.Status.Bool())
		assert.Nil(t, in.Week)
	})

	t.Run("missing status key is not sent", func(t *testing.T) {
		var in AttendanceInput
		require.NoError(t, json.Unmarshal([]byte(`{"day":4}`), &in))
		assert.False(t, in.Status.Set)
		assert.False(t, in.Status.Bool())
	})

	t.Run("truthy strings follow Truthy", func(t *testing.T) {
		var in AttendanceInput
		require.NoError(t, json.Unmarshal([]byte(`{"status":"no"}`), &in))
		assert.True(t, in.Status.Set)
		assert.True(t, in.Status.Bool())
	})
}

func TestMonthlyBreakdownJSON(t *testing.T) {
	t.Run("keys keep slice order", func(t *testing.T) {
		m := MonthlyBreakdown{
			{Month: 11, MonthStats: MonthStats{Total: 1, Present: 1, Percentage: 100}},
			{Month: 2, MonthStats: MonthStats{Total: 2, Present: 1, Absent: 1, Percentage: 50}},
		}
		raw, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, `{"11":{"total":1,"present":1,"absent":0,"percentage":100},"2":{"total":2,"present":1,"absent":1,"percentage":50}}`, string(raw))

		var back MonthlyBreakdown
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, m, back)
	})

	t.Run("nil encodes as empty object", func(t *testing.T) {
		raw, err := json.Marshal(AttendanceStats{})
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"monthlyBreakdown":{}`)
	})

	t.Run("rejects non numeric keys", func(t *testing.T) {
		var m MonthlyBreakdown
		assert.Error(t, json.Unmarshal([]byte(`{"jan":{}}`), &m))
	})
}
