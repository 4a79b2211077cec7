package testutil

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RequireColumns fails the test immediately unless df has every column.
func RequireColumns(t *testing.T, df dataframe.DataFrame, cols ...string) {
	t.Helper()
	require.NoError(t, df.Err)
	names := df.Names()
	for _, c := range cols {
		require.Contains(t, names, c, "missing column %q", c)
	}
}

// AssertFloatsInDelta compares two columns element-wise. NaN matches NaN.
func AssertFloatsInDelta(t *testing.T, want, got []float64, delta float64) {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			assert.True(t, math.IsNaN(got[i]), "row %d: want NaN, got %v", i, got[i])
			continue
		}
		assert.InDelta(t, want[i], got[i], delta, "row %d", i)
	}
}
