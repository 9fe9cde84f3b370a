package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/ghost/lang/compiler"
	"github.com/mna/ghost/lang/machine"
	"github.com/mna/mainer"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return RunSource(stdio, string(src))
}

// RunSource compiles and interprets src to completion, reporting the
// process's reserved compile-error and runtime-error exit codes the way
// clox's main() maps INTERPRET_COMPILE_ERROR/INTERPRET_RUNTIME_ERROR onto
// 65/70 (§7 "Exit codes").
func RunSource(stdio mainer.Stdio, src string) error {
	vm := machine.New()
	vm.Stdout = stdio.Stdout
	vm.Stderr = stdio.Stderr

	result, err := vm.Interpret(src, compiler.Compile)
	switch result {
	case machine.CompileError:
		fmt.Fprintln(stdio.Stderr, err)
		return &cmdError{code: exitCompileError, err: err}
	case machine.RuntimeError:
		fmt.Fprintln(stdio.Stderr, err)
		return &cmdError{code: exitRuntimeError, err: err}
	}
	return nil
}
