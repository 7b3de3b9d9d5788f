package apportionment

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func reading(id string, cur, prev string) Reading {
	return Reading{ConsumerID: id, Current: d(cur), Previous: d(prev)}
}

func TestComputeShares_TwoConsumers(t *testing.T) {
	alloc, err := ComputeShares(d("100"), []Reading{
		reading("PB-A", "20", "10"),
		reading("PB-B", "15", "10"),
	})
	require.NoError(t, err)

	require.Len(t, alloc.Shares, 2)
	assert.Equal(t, "15", alloc.TotalConsumption.String())
	assert.Equal(t, "6.6667", alloc.UnitPrice.Round(4).String())
	assert.Equal(t, "10", alloc.Shares[0].Consumption.String())
	assert.Equal(t, "5", alloc.Shares[1].Consumption.String())
	assert.Equal(t, "66.67", alloc.Shares[0].ShareExact.Round(2).String())
	assert.Equal(t, "33.33", alloc.Shares[1].ShareExact.Round(2).String())
	assert.Equal(t, int64(67), alloc.Shares[0].ShareRounded)
	assert.Equal(t, int64(33), alloc.Shares[1].ShareRounded)
	assert.Equal(t, int64(100), alloc.RoundedTotal)
	assert.True(t, alloc.RoundingDelta.IsZero())
}

func TestComputeShares_ZeroConsumption(t *testing.T) {
	alloc, err := ComputeShares(d("50"), []Reading{reading("1-A", "5", "5")})
	require.NoError(t, err)

	assert.True(t, alloc.UnitPrice.IsZero())
	assert.True(t, alloc.TotalConsumption.IsZero())
	require.Len(t, alloc.Shares, 1)
	assert.True(t, alloc.Shares[0].Consumption.IsZero())
	assert.Equal(t, int64(0), alloc.Shares[0].ShareRounded)
}

func TestComputeShares_MeterRollbackIsClamped(t *testing.T) {
	alloc, err := ComputeShares(d("80"), []Reading{
		reading("2-A", "5", "8"),
		reading("2-B", "14", "10"),
	})
	require.NoError(t, err)

	assert.Equal(t, "4", alloc.TotalConsumption.String())
	assert.True(t, alloc.Shares[0].Consumption.IsZero())
	assert.Equal(t, int64(0), alloc.Shares[0].ShareRounded)
	assert.Equal(t, int64(80), alloc.Shares[1].ShareRounded)
}

func TestComputeShares_RoundingSlackIsNotRedistributed(t *testing.T) {
	alloc, err := ComputeShares(d("10"), []Reading{
		reading("3-A", "1", "0"),
		reading("3-B", "1", "0"),
		reading("4-A", "1", "0"),
	})
	require.NoError(t, err)

	assert.Equal(t, "3.3333", alloc.UnitPrice.Round(4).String())
	for _, s := range alloc.Shares {
		assert.Equal(t, "3.33", s.ShareExact.Round(2).String())
		assert.Equal(t, int64(3), s.ShareRounded)
	}
	assert.Equal(t, int64(9), alloc.RoundedTotal)
	assert.Equal(t, "-1", alloc.RoundingDelta.String())
}

func TestComputeShares_InvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		total    decimal.Decimal
		readings []Reading
	}{
		{name: "empty readings", total: d("10"), readings: nil},
		{name: "negative current", total: d("10"), readings: []Reading{reading("5-A", "-1", "0")}},
		{name: "negative previous", total: d("10"), readings: []Reading{reading("5-A", "3", "-2")}},
		{name: "negative total", total: d("-0.01"), readings: []Reading{reading("5-A", "3", "1")}},
		{name: "negative source reading", total: d("10"), readings: []Reading{
			{ConsumerID: "GENERAL", Current: d("-4"), Previous: d("0"), Source: true},
			reading("5-A", "3", "1"),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alloc, err := ComputeShares(tc.total, tc.readings)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Empty(t, alloc.Shares)
		})
	}
}

func TestComputeShares_SourceMeterExcluded(t *testing.T) {
	alloc, err := ComputeShares(d("300"), []Reading{
		reading("PB-A", "30", "20"),
		{ConsumerID: "GENERAL", Current: d("900"), Previous: d("870"), Source: true},
		reading("1-A", "40", "20"),
	})
	require.NoError(t, err)

	assert.Equal(t, "30", alloc.TotalConsumption.String())
	require.Len(t, alloc.Shares, 2)
	assert.Equal(t, "PB-A", alloc.Shares[0].ConsumerID)
	assert.Equal(t, "1-A", alloc.Shares[1].ConsumerID)
	assert.Equal(t, int64(100), alloc.Shares[0].ShareRounded)
	assert.Equal(t, int64(200), alloc.Shares[1].ShareRounded)
}

func TestComputeShares_HalfRoundsAwayFromZero(t *testing.T) {
	alloc, err := ComputeShares(d("5"), []Reading{
		reading("6-A", "1", "0"),
		reading("6-B", "1", "0"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2.5", alloc.Shares[0].ShareExact.String())
	assert.Equal(t, int64(3), alloc.Shares[0].ShareRounded)
	assert.Equal(t, int64(3), alloc.Shares[1].ShareRounded)
}

func TestComputeShares_HalfRoundsUpWithRepeatingUnitPrice(t *testing.T) {
	// 5 / 6 does not terminate; each 3 * 5/6 share is exactly 2.5.
	alloc, err := ComputeShares(d("5"), []Reading{
		reading("1-A", "3", "0"),
		reading("2-A", "3", "0"),
	})
	require.NoError(t, err)

	for _, s := range alloc.Shares {
		assert.Equal(t, "2.5", s.ShareExact.String())
		assert.Equal(t, int64(3), s.ShareRounded)
	}
	assert.Equal(t, int64(6), alloc.RoundedTotal)
	assert.Equal(t, "0.8333", alloc.UnitPrice.Round(4).String())
}

func TestComputeShares_ThirdsOfHalfUnits(t *testing.T) {
	// 7 / 3 per unit: 1.5 units => 3.5, 1.5 units => 3.5.
	alloc, err := ComputeShares(d("7"), []Reading{
		reading("PB-A", "1.5", "0"),
		reading("PB-B", "1.5", "0"),
	})
	require.NoError(t, err)

	assert.Equal(t, "3.5", alloc.Shares[0].ShareExact.String())
	assert.Equal(t, int64(4), alloc.Shares[0].ShareRounded)
	assert.Equal(t, int64(4), alloc.Shares[1].ShareRounded)
}

func randomBatch(rng *rand.Rand) (decimal.Decimal, []Reading) {
	n := 1 + rng.Intn(15)
	readings := make([]Reading, 0, n)
	for i := 0; i < n; i++ {
		prev := decimal.NewFromInt(int64(rng.Intn(5000))).Div(decimal.NewFromInt(10))
		cur := prev.Add(decimal.NewFromInt(int64(rng.Intn(400) - 40)).Div(decimal.NewFromInt(10)))
		if cur.IsNegative() {
			cur = decimal.Zero
		}
		readings = append(readings, Reading{
			ConsumerID: string(rune('A'+i)) + "-unit",
			Current:    cur,
			Previous:   prev,
			Source:     i == 0 && rng.Intn(3) == 0,
		})
	}
	total := decimal.NewFromInt(int64(rng.Intn(200000))).Div(decimal.NewFromInt(100))
	return total, readings
}

func TestComputeShares_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 500; iter++ {
		total, readings := randomBatch(rng)

		first, err := ComputeShares(total, readings)
		require.NoError(t, err)
		second, err := ComputeShares(total, readings)
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		require.Equal(t, string(a), string(b), "allocation must be deterministic")

		expectedIDs := make([]string, 0, len(readings))
		for _, r := range readings {
			if !r.Source {
				expectedIDs = append(expectedIDs, r.ConsumerID)
			}
		}
		gotIDs := make([]string, 0, len(first.Shares))
		for _, s := range first.Shares {
			gotIDs = append(gotIDs, s.ConsumerID)
			require.False(t, s.Consumption.IsNegative())
			require.GreaterOrEqual(t, s.ShareRounded, int64(0))
			if first.TotalConsumption.IsZero() {
				require.True(t, s.UnitPrice.IsZero())
				require.Equal(t, int64(0), s.ShareRounded)
			}
		}
		require.Equal(t, expectedIDs, gotIDs)

		for i, r := range readings {
			if r.Source || !r.Current.LessThan(r.Previous) {
				continue
			}
			for _, s := range first.Shares {
				if s.ConsumerID == readings[i].ConsumerID {
					require.True(t, s.Consumption.IsZero())
					require.Equal(t, int64(0), s.ShareRounded)
				}
			}
		}

		if first.TotalConsumption.Sign() > 0 {
			bound := decimal.NewFromFloat(0.5).Mul(decimal.NewFromInt(int64(len(first.Shares))))
			require.True(t, first.RoundingDelta.Abs().LessThanOrEqual(bound),
				"rounding delta %s exceeds bound %s", first.RoundingDelta, bound)
		}
	}
}

func TestComputeUnitPrice(t *testing.T) {
	price, err := ComputeUnitPrice(d("90"), d("30"))
	require.NoError(t, err)
	assert.Equal(t, "3", price.String())

	price, err = ComputeUnitPrice(d("90"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, price.IsZero())

	_, err = ComputeUnitPrice(d("-1"), d("3"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSumTotals(t *testing.T) {
	sum, err := SumTotals(d("120.50"), d("80"))
	require.NoError(t, err)
	assert.Equal(t, "200.5", sum.String())

	_, err = SumTotals(d("1"), d("-2"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
