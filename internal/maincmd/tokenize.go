package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/ghost/lang/scanner"
	"github.com/mna/ghost/lang/token"
	"github.com/mna/mainer"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

// TokenizeFiles scans each file in turn and prints one line per token,
// adapted from nenuphar's TokenizeFiles line-per-token shape to Ghost's
// line-only (no column/offset) token.Token.
func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		scan := scanner.New(src)
		for {
			tok := scan.Next()
			fmt.Fprintf(stdio.Stdout, "%4d %-14s %q\n", tok.Line, tok.Kind, tok.Lexeme)
			if tok.Kind == token.EOF {
				break
			}
			if tok.Kind == token.ILLEGAL {
				err := fmt.Errorf("%s:%d: %s", file, tok.Line, tok.Lexeme)
				fmt.Fprintln(stdio.Stderr, err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}
	return firstErr
}
