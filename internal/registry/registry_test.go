package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestList_StableOrderAndCount(t *testing.T) {
	t.Parallel()

	a := List()
	b := List()
	require.Len(t, a, Count())
	require.Equal(t, a, b)
	require.Equal(t, "NVDA", a[0].ID)
	require.Equal(t, "2382", a[len(a)-1].ID)

	// List hands out copies; mutating one must not leak into the table.
	a[0].Name = "mutated"
	require.NotEqual(t, a[0].Name, List()[0].Name)
}

func TestPartitionBySource_CoversEveryInstrumentOnce(t *testing.T) {
	t.Parallel()

	primary, fallback := PartitionBySource()
	require.Equal(t, Count(), len(primary)+len(fallback))

	for _, inst := range primary {
		require.NotEmpty(t, inst.SinaCode, "primary instrument %s", inst.ID)
	}
	for _, inst := range fallback {
		require.Empty(t, inst.SinaCode, "fallback instrument %s", inst.ID)
		require.NotEmpty(t, inst.Ticker, "fallback instrument %s must resolve by ticker", inst.ID)
	}
}

func TestPartition_TWOnlyThroughFallback(t *testing.T) {
	t.Parallel()

	_, fallback := PartitionBySource()
	for _, inst := range fallback {
		require.Equal(t, MarketTW, inst.Market)
	}
	require.Len(t, fallback, 4)
}

func TestInstruments_HaveRequiredFields(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, inst := range List() {
		require.NotEmpty(t, inst.ID)
		require.False(t, seen[inst.ID], "duplicate id %s", inst.ID)
		seen[inst.ID] = true
		require.NotEmpty(t, inst.Ticker)
		require.NotEmpty(t, inst.Name)
		require.NotEmpty(t, inst.Query)
		require.Contains(t, []Market{MarketUS, MarketCN, MarketHK, MarketTW}, inst.Market)
		require.Contains(t, []Sector{SectorHardware, SectorApplication}, inst.Sector)
	}
}
