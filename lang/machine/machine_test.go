package machine_test

import (
	"bytes"
	"testing"

	"github.com/mna/ghost/lang/compiler"
	"github.com/mna/ghost/lang/machine"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (string, machine.Result, error) {
	t.Helper()
	var out bytes.Buffer
	vm := machine.New()
	vm.Stdout = &out
	vm.Stderr = &out
	result, err := vm.Interpret(src, compiler.Compile)
	return out.String(), result, err
}

func TestArithmeticAndPrecedence(t *testing.T) {
	out, result, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	require.Equal(t, machine.OK, result)
	require.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, _, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	require.Equal(t, "foobar\n", out)
}

func TestGlobalAndLocalVariables(t *testing.T) {
	out, _, err := run(t, `
var a = 1;
{
  var a = 2;
  print a;
}
print a;
`)
	require.NoError(t, err)
	require.Equal(t, "2\n1\n", out)
}

func TestClosureCapturesUpvalueByReference(t *testing.T) {
	out, _, err := run(t, `
function makeCounter() {
  var i = 0;
  function count() {
    i = i + 1;
    print i;
  }
  return count;
}
var counter = makeCounter();
counter();
counter();
`)
	require.NoError(t, err)
	require.Equal(t, "1\n2\n", out)
}

func TestClassesAndInheritance(t *testing.T) {
	out, _, err := run(t, `
class Animal {
  init(name) {
    this.name = name;
  }
  speak() {
    print this.name + " makes a sound";
  }
}
class Dog < Animal {
  speak() {
    super.speak();
    print this.name + " barks";
  }
}
var d = Dog("Rex");
d.speak();
`)
	require.NoError(t, err)
	require.Equal(t, "Rex makes a sound\nRex barks\n", out)
}

func TestListLiteralAndSubscript(t *testing.T) {
	out, _, err := run(t, `
var xs = [1, 2, 3];
xs[1] = 20;
print xs[0];
print xs[1];
print xs[2];
`)
	require.NoError(t, err)
	require.Equal(t, "1\n20\n3\n", out)
}

func TestForLoopDesugaring(t *testing.T) {
	out, _, err := run(t, `
var sum = 0;
for (var i = 0; i < 5; i = i + 1) {
  sum = sum + i;
}
print sum;
`)
	require.NoError(t, err)
	require.Equal(t, "10\n", out)
}

func TestAndOrShortCircuit(t *testing.T) {
	out, _, err := run(t, `
function sideEffect() { print "called"; return true; }
print false and sideEffect();
print true or sideEffect();
`)
	require.NoError(t, err)
	require.Equal(t, "false\ntrue\n", out)
}

func TestUndefinedGlobalIsRuntimeError(t *testing.T) {
	_, result, err := run(t, `print undefined;`)
	require.Equal(t, machine.RuntimeError, result)
	require.Error(t, err)
}

func TestNegateNonNumberIsRuntimeError(t *testing.T) {
	_, result, err := run(t, `print -"abc";`)
	require.Equal(t, machine.RuntimeError, result)
	require.Error(t, err)
}

func TestCompileErrorReportsAndDoesNotRun(t *testing.T) {
	out, result, err := run(t, `print ;`)
	require.Equal(t, machine.CompileError, result)
	require.Error(t, err)
	require.Empty(t, out)
}

func TestStringIdentityAcrossSeparateCompiles(t *testing.T) {
	// two independent Compile calls against the same VM (the REPL's shape)
	// each produce their own one-off ObjString for the name "shared"; the
	// post-compile interning pass must fold both to the one canonical
	// pointer or the second call's SET_GLOBAL would never find the global
	// the first call defined.
	var out bytes.Buffer
	vm := machine.New()
	vm.Stdout = &out
	vm.Stderr = &out

	_, err := vm.Interpret(`var shared = 1;`, compiler.Compile)
	require.NoError(t, err)
	result, err := vm.Interpret(`shared = shared + 1; print shared;`, compiler.Compile)
	require.NoError(t, err)
	require.Equal(t, machine.OK, result)
	require.Equal(t, "2\n", out.String())
}
