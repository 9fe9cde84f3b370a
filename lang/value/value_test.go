package value_test

import (
	"testing"

	"github.com/mna/ghost/lang/value"
	"github.com/stretchr/testify/require"
)

func TestIsFalsey(t *testing.T) {
	require.True(t, value.Nil.IsFalsey())
	require.True(t, value.Bool(false).IsFalsey())
	require.False(t, value.Bool(true).IsFalsey())
	require.False(t, value.Number(0).IsFalsey())
	require.False(t, value.Obj(value.NewString("")).IsFalsey())
}

func TestEqualPrimitives(t *testing.T) {
	require.True(t, value.Nil.Equal(value.Nil))
	require.True(t, value.Bool(true).Equal(value.Bool(true)))
	require.False(t, value.Bool(true).Equal(value.Bool(false)))
	require.True(t, value.Number(1).Equal(value.Number(1)))
	require.False(t, value.Number(1).Equal(value.Number(2)))
	require.False(t, value.Number(1).Equal(value.Bool(true)))
}

func TestEqualObjectsAreIdentity(t *testing.T) {
	a := value.NewString("abc")
	b := value.NewString("abc") // deliberately not interned
	require.False(t, value.Obj(a).Equal(value.Obj(b)), "distinct heap strings must not compare equal without interning")
	require.True(t, value.Obj(a).Equal(value.Obj(a)))
}

func TestStringRendersNumbers(t *testing.T) {
	require.Equal(t, "7", value.Number(7).String())
	require.Equal(t, "2.5", value.Number(2.5).String())
	require.Equal(t, "null", value.Nil.String())
	require.Equal(t, "true", value.Bool(true).String())
}

func TestTypeName(t *testing.T) {
	require.Equal(t, "null", value.Nil.TypeName())
	require.Equal(t, "boolean", value.Bool(true).TypeName())
	require.Equal(t, "number", value.Number(1).TypeName())
	require.Equal(t, "string", value.Obj(value.NewString("x")).TypeName())
}

func TestObjPanicsOnNil(t *testing.T) {
	require.Panics(t, func() { value.Obj(nil) })
}

func TestHashString(t *testing.T) {
	require.Equal(t, value.HashString(""), value.HashString(""))
	require.NotEqual(t, value.HashString("a"), value.HashString("b"))
	require.Equal(t, value.HashString("same"), value.HashString("same"))
}
