package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/ghost/lang/compiler"
	"github.com/mna/ghost/lang/machine"
	"github.com/mna/mainer"
)

// Repl runs an interactive read-eval-print loop, one line at a time, the
// way clox's repl() reads with fgets and calls interpret() against a single
// long-lived VM so that globals and classes declared on one line are still
// visible on the next (§5 "Interactive use").
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	vm := machine.New()
	vm.Stdout = stdio.Stdout
	vm.Stderr = stdio.Stderr

	scan := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, "> ")
		if !scan.Scan() {
			fmt.Fprintln(stdio.Stdout)
			return scan.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scan.Text()
		if line == "" {
			continue
		}

		// a REPL line's compile/runtime errors are reported and the loop
		// continues; only the outer Main maps a whole run to an exit code, and
		// the REPL always exits 0 on EOF.
		if _, err := vm.Interpret(line, compiler.Compile); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
		}
	}
}
