package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/ghost/lang/chunk"
	"github.com/mna/ghost/lang/compiler"
	"github.com/mna/mainer"
)

// Disassemble compiles a script and prints its bytecode listing instead of
// running it, the standalone counterpart to clox's DEBUG_PRINT_CODE build
// flag (§6.1 "Disassembly").
func (c *Cmd) Disassemble(ctx context.Context, stdio mainer.Stdio, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	fn, err := compiler.Compile(string(src))
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &cmdError{code: exitCompileError, err: err}
	}

	name := fn.Name
	if name == "" {
		name = "<script>"
	}
	return chunk.Disassemble(stdio.Stdout, &fn.Chunk, name)
}
