package compiler

import (
	"fmt"

	"github.com/mna/ghost/lang/token"
)

func (p *parser) advance() {
	p.previous = p.current
	for {
		p.current = p.scan.Next()
		if p.current.Kind != token.ILLEGAL {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *parser) check(k token.Kind) bool { return p.current.Kind == k }

func (p *parser) match(k token.Kind) bool {
	if !p.check(k) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) consume(k token.Kind, msg string) {
	if p.current.Kind == k {
		p.advance()
		return
	}
	p.errorAtCurrent(msg)
}

func (p *parser) error(msg string) { p.errorAt(p.previous, msg) }

func (p *parser) errorAtCurrent(msg string) { p.errorAt(p.current, msg) }

// errorAt reports a compile error at tok's position and panics with
// compileError, unwinding to the nearest synchronize call (or to Compile
// itself, at the top level).
func (p *parser) errorAt(tok token.Token, msg string) {
	where := "at end"
	if tok.Kind != token.EOF {
		where = fmt.Sprintf("at '%s'", tok.Lexeme)
	}
	full := fmt.Sprintf("[line %d] Error %s: %s", tok.Line, where, msg)
	if !p.hadError {
		p.firstError = full
	}
	p.hadError = true
	panic(compileError{msg: full})
}

// synchronize recovers from a panicked compileError and skips tokens until
// it finds what looks like the start of the next statement, so the parser
// can keep going through the rest of the source (§6.1 "panic-mode
// recovery"). Only the first error is kept; it is the one Compile returns.
func (p *parser) synchronize() {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(compileError); !ok {
		panic(r)
	}

	for p.current.Kind != token.EOF {
		if p.previous.Kind == token.SEMI {
			return
		}
		switch p.current.Kind {
		case token.CLASS, token.FUNCTION, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
