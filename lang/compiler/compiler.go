// Package compiler implements Ghost's single-pass compiler: a Pratt
// expression parser fused with recursive-descent statement parsing that
// emits bytecode directly into a value.Chunk as it goes, with no
// intermediate AST (§6.1). Error recovery is panic-mode, implemented with a
// real Go panic/recover pair the way nenuphar's resolver package collects
// and reports errors without aborting the whole batch — adapted here to
// classic single-pass-compiler synchronization (skip to the next statement
// boundary) since Ghost has no separate resolve phase to synchronize
// within.
package compiler

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/mna/ghost/lang/chunk"
	"github.com/mna/ghost/lang/scanner"
	"github.com/mna/ghost/lang/token"
	"github.com/mna/ghost/lang/value"
)

// funcType distinguishes the four kinds of compiled function bodies, each
// with slightly different implicit behavior (§4.3, §3.2):
//   - script: the implicit top-level function wrapping the whole source
//     file; returns null if control falls off the end.
//   - function: an ordinary `function` declaration or expression.
//   - method: a class method; `this` is bound as local slot 0.
//   - initializer: a class's `init` method; a bare `return;` inside one
//     returns `this` rather than null.
type funcType int

const (
	funcScript funcType = iota
	funcFunction
	funcMethod
	funcInitializer
)

// local tracks one declared local variable's name and the scope depth it
// was declared at; depth -1 means "declared but not yet initialized" (used
// to reject `var x = x;` self-reference, §4.3 "Shadowing").
type local struct {
	name     string
	depth    int
	captured bool // true once some nested function closes over this local
}

// upvalueRef records how a compiled function's Nth upvalue is captured:
// either directly from a local slot in the immediately enclosing function,
// or transitively from that function's own upvalue list (§3.2, §6.1
// "Upvalue resolution").
type upvalueRef struct {
	index   byte
	isLocal bool
}

// classCompiler tracks the lexically enclosing class body, so `this` and
// `super` can be rejected outside one and `super` can be rejected when the
// class has no superclass (§4.3 "Class body validation").
type classCompiler struct {
	enclosing     *classCompiler
	hasSuperclass bool
}

// funcCompiler holds all per-function compilation state, linked to its
// lexically enclosing function's compiler so resolveUpvalue can walk
// outward (§6.1 "Upvalue resolution walks the enclosing chain").
type funcCompiler struct {
	enclosing *funcCompiler
	function  *value.ObjFunction
	kind      funcType

	locals     []local
	upvalues   []upvalueRef
	scopeDepth int

	// stringConsts dedupes string-literal constants by content within this
	// function's chunk (§4.3 "Constant dedup"). Backed by
	// github.com/dolthub/swiss (resolved to github.com/mna/swiss by go.mod's
	// replace directive) rather than a plain Go map: it's the same
	// open-addressed hash-table family nenuphar's ecosystem already pulls in,
	// and the compiler's constant pools are exactly the kind of short-lived,
	// write-once, read-many map this package is built for.
	stringConsts *swiss.Map[string, byte]
}

// parser holds the token stream, the current funcCompiler, and the error
// state shared across one Compile call.
type parser struct {
	scan *scanner.Scanner

	current  token.Token
	previous token.Token

	hadError   bool
	firstError string

	fc    *funcCompiler
	class *classCompiler
}

// compileError is panicked by (*parser).errorAt and recovered by
// synchronize at the next statement boundary, or by Compile itself if it
// escapes every enclosing synchronize call (e.g. an error while parsing the
// very last token of the file).
type compileError struct{ msg string }

func (e compileError) Error() string { return e.msg }

// Compile parses and compiles source into a fresh top-level ObjFunction
// (§4.3 "Output"). A non-nil error means at least one syntax error was
// reported; the returned function is nil in that case (§7 exit code 65).
func Compile(source string) (fn *value.ObjFunction, err error) {
	p := &parser{scan: scanner.New([]byte(source))}
	p.fc = newFuncCompiler(nil, funcScript, "")

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(compileError); !ok {
				panic(r)
			}
			// an error escaped every synchronize call (e.g. at EOF); Compile
			// still reports it from p.firstError.
			fn, err = nil, fmt.Errorf("ghost: compile error: %s", p.firstError)
		}
	}()

	p.advance()
	for !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.EOF, "expected end of expression")

	fn = p.endFunction()
	if p.hadError {
		return nil, fmt.Errorf("ghost: compile error: %s", p.firstError)
	}
	return fn, nil
}

func newFuncCompiler(enclosing *funcCompiler, kind funcType, name string) *funcCompiler {
	fn := value.NewFunction()
	fn.Name = name
	fc := &funcCompiler{enclosing: enclosing, function: fn, kind: kind, stringConsts: swiss.NewMap[string, byte](8)}

	// Slot 0 is reserved: `this` for methods/initializers, otherwise an
	// unnamed slot holding the running closure itself (§6.1 "Slot zero").
	slotName := ""
	if kind == funcMethod || kind == funcInitializer {
		slotName = "this"
	}
	fc.locals = append(fc.locals, local{name: slotName, depth: 0})
	return fc
}

func (p *parser) currentChunk() *value.Chunk { return &p.fc.function.Chunk }

// endFunction closes out the current funcCompiler, implicitly returning
// null (or `this` for an initializer) if control falls off the end, and
// pops back to the enclosing funcCompiler.
func (p *parser) endFunction() *value.ObjFunction {
	p.emitReturn()
	fn := p.fc.function
	fn.UpvalueCount = len(p.fc.upvalues)
	p.fc = p.fc.enclosing
	return fn
}

func (p *parser) emitReturn() {
	if p.fc.kind == funcInitializer {
		p.emitBytes(byte(chunk.GET_LOCAL), 0)
	} else {
		p.emitByte(byte(chunk.NULL))
	}
	p.emitByte(byte(chunk.RETURN))
}
