package compiler_test

import (
	"testing"

	"github.com/mna/ghost/lang/compiler"
	"github.com/mna/ghost/lang/value"
	"github.com/stretchr/testify/require"
)

func TestCompileValidProgram(t *testing.T) {
	fn, err := compiler.Compile(`
var x = 1 + 2;
print x;
`)
	require.NoError(t, err)
	require.NotNil(t, fn)
	require.Equal(t, 0, fn.Arity)
}

func TestCompileSyntaxErrorIsReported(t *testing.T) {
	// a missing semicolon on the first statement is a syntax error; Compile
	// must report it even though the second statement is valid.
	_, err := compiler.Compile(`
var a = 1
var b = 2;
`)
	require.Error(t, err)
}

func TestCompileRejectsThisOutsideClass(t *testing.T) {
	_, err := compiler.Compile(`print this;`)
	require.Error(t, err)
}

func TestCompileRejectsReturnOutsideFunction(t *testing.T) {
	_, err := compiler.Compile(`return 1;`)
	require.Error(t, err)
}

func TestCompileFunctionArity(t *testing.T) {
	fn, err := compiler.Compile(`
function add(a, b) {
  return a + b;
}
`)
	require.NoError(t, err)
	require.NotNil(t, fn)
	// the top-level function just declares `add`; its arity lives on the
	// nested ObjFunction constant emitted for the CLOSURE instruction.
	var nested *value.ObjFunction
	for _, c := range fn.Chunk.Constants {
		if c.IsObj() && c.ObjKind() == value.ObjFunction {
			nested = c.AsObj().(*value.ObjFunction)
		}
	}
	require.NotNil(t, nested)
	require.Equal(t, 2, nested.Arity)
}

func TestCompileDedupesRepeatedStringConstant(t *testing.T) {
	fn, err := compiler.Compile(`
print "same";
print "same";
`)
	require.NoError(t, err)
	count := 0
	for _, c := range fn.Chunk.Constants {
		if c.IsObj() && c.ObjKind() == value.ObjString && c.AsObj().(*value.ObjString).Bytes == "same" {
			count++
		}
	}
	require.Equal(t, 1, count)
}
