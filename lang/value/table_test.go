package value_test

import (
	"fmt"
	"testing"

	"github.com/mna/ghost/lang/value"
	"github.com/stretchr/testify/require"
)

func TestTableSetGet(t *testing.T) {
	tbl := value.NewTable()
	key := value.NewString("x")

	_, ok := tbl.Get(key)
	require.False(t, ok)

	isNew := tbl.Set(key, value.Number(42))
	require.True(t, isNew)

	v, ok := tbl.Get(key)
	require.True(t, ok)
	require.Equal(t, value.Number(42), v)

	isNew = tbl.Set(key, value.Number(43))
	require.False(t, isNew)
	v, _ = tbl.Get(key)
	require.Equal(t, value.Number(43), v)
}

func TestTableDeleteLeavesTombstoneProbeChainIntact(t *testing.T) {
	tbl := value.NewTable()
	// force several keys into the same small table so some share a probe chain
	keys := make([]*value.ObjString, 0, 6)
	for i := 0; i < 6; i++ {
		k := value.NewString(fmt.Sprintf("k%d", i))
		keys = append(keys, k)
		tbl.Set(k, value.Number(float64(i)))
	}

	require.True(t, tbl.Delete(keys[2]))
	require.False(t, tbl.Delete(keys[2]), "deleting twice reports absent the second time")

	// every other key must still be reachable despite the tombstone
	for i, k := range keys {
		if i == 2 {
			_, ok := tbl.Get(k)
			require.False(t, ok)
			continue
		}
		v, ok := tbl.Get(k)
		require.True(t, ok)
		require.Equal(t, value.Number(float64(i)), v)
	}
}

func TestTableDeleteThenReinsertMatchesStraightInsert(t *testing.T) {
	tbl := value.NewTable()
	k1 := value.NewString("a")
	k2 := value.NewString("b")
	tbl.Set(k1, value.Number(1))
	tbl.Set(k2, value.Number(2))

	tbl.Delete(k1)
	tbl.Set(k1, value.Number(1))

	straight := value.NewTable()
	straight.Set(k2, value.Number(2))
	straight.Set(k1, value.Number(1))

	v1, ok1 := tbl.Get(k1)
	v2, ok2 := straight.Get(k1)
	require.Equal(t, ok1, ok2)
	require.Equal(t, v1, v2)
}

func TestTableGrowsPastLoadFactor(t *testing.T) {
	tbl := value.NewTable()
	const n = 200
	keys := make([]*value.ObjString, n)
	for i := 0; i < n; i++ {
		keys[i] = value.NewString(fmt.Sprintf("key-%d", i))
		tbl.Set(keys[i], value.Number(float64(i)))
	}
	require.Equal(t, n, tbl.Count())
	for i, k := range keys {
		v, ok := tbl.Get(k)
		require.True(t, ok)
		require.Equal(t, value.Number(float64(i)), v)
	}
}

func TestTableFindStringByContent(t *testing.T) {
	tbl := value.NewTable()
	s := value.NewString("hello")
	tbl.Set(s, value.Nil)

	found := tbl.FindString("hello", value.HashString("hello"))
	require.Same(t, s, found)

	require.Nil(t, tbl.FindString("missing", value.HashString("missing")))
}

func TestTableDeleteUnmarkedRemovesDeadStrings(t *testing.T) {
	tbl := value.NewTable()
	live := value.NewString("live")
	dead := value.NewString("dead")
	tbl.Set(live, value.Nil)
	tbl.Set(dead, value.Nil)

	value.SetMarked(live, true)
	tbl.DeleteUnmarked()

	require.NotNil(t, tbl.FindString("live", value.HashString("live")))
	require.Nil(t, tbl.FindString("dead", value.HashString("dead")))
}

func TestTableAddAll(t *testing.T) {
	src := value.NewTable()
	k := value.NewString("m")
	src.Set(k, value.Number(1))

	dst := value.NewTable()
	dst.AddAll(src)

	v, ok := dst.Get(k)
	require.True(t, ok)
	require.Equal(t, value.Number(1), v)
}
