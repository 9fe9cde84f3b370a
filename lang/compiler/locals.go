package compiler

import (
	"github.com/mna/ghost/lang/chunk"
	"github.com/mna/ghost/lang/token"
)

func (p *parser) beginScope() { p.fc.scopeDepth++ }

// endScope pops every local declared in the scope just exited, emitting
// CLOSE_UPVALUE for ones captured by a nested closure and a plain POP
// otherwise (§6.1 "scope exit").
func (p *parser) endScope() {
	p.fc.scopeDepth--
	locals := p.fc.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > p.fc.scopeDepth {
		if locals[len(locals)-1].captured {
			p.emitByte(byte(chunk.CLOSE_UPVALUE))
		} else {
			p.emitByte(byte(chunk.POP))
		}
		locals = locals[:len(locals)-1]
	}
	p.fc.locals = locals
}

// declareVariable registers name as a new local in the current scope,
// rejecting a duplicate declaration within the same scope (§4.3 "No
// redeclaration within a block"). At global scope it is a no-op: globals
// are resolved dynamically by name, never by slot.
func (p *parser) declareVariable(name string) {
	if p.fc.scopeDepth == 0 {
		return
	}
	for i := len(p.fc.locals) - 1; i >= 0; i-- {
		l := p.fc.locals[i]
		if l.depth != -1 && l.depth < p.fc.scopeDepth {
			break
		}
		if l.name == name {
			p.error("already a variable with this name in this scope")
		}
	}
	p.addLocal(name)
}

func (p *parser) addLocal(name string) {
	if len(p.fc.locals) == 256 {
		p.error("too many local variables in function")
		return
	}
	p.fc.locals = append(p.fc.locals, local{name: name, depth: -1})
}

// markInitialized promotes the most recently declared local from "declared"
// to "ready", i.e. its own initializer expression may not reference it
// (§4.3 "var x = x;" is an error) but subsequent code may.
func (p *parser) markInitialized() {
	if p.fc.scopeDepth == 0 {
		return
	}
	p.fc.locals[len(p.fc.locals)-1].depth = p.fc.scopeDepth
}

// resolveLocal finds name in fc's own locals, searching innermost-scope
// first, and reports a use-before-initialization error if found mid-decl.
func resolveLocal(p *parser, fc *funcCompiler, name string) int {
	for i := len(fc.locals) - 1; i >= 0; i-- {
		if fc.locals[i].name == name {
			if fc.locals[i].depth == -1 {
				p.error("can't read local variable in its own initializer")
			}
			return i
		}
	}
	return -1
}

// resolveUpvalue walks the enclosing-function chain to find name as a
// local or transitive upvalue, adding an upvalueRef to every function
// compiler along the way so closures capture across more than one nesting
// level correctly (§3.2, §6.1 "Upvalue resolution").
func resolveUpvalue(p *parser, fc *funcCompiler, name string) int {
	if fc.enclosing == nil {
		return -1
	}
	if slot := resolveLocal(p, fc.enclosing, name); slot != -1 {
		fc.enclosing.locals[slot].captured = true
		return addUpvalue(fc, byte(slot), true)
	}
	if slot := resolveUpvalue(p, fc.enclosing, name); slot != -1 {
		return addUpvalue(fc, byte(slot), false)
	}
	return -1
}

func addUpvalue(fc *funcCompiler, index byte, isLocal bool) int {
	for i, up := range fc.upvalues {
		if up.index == index && up.isLocal == isLocal {
			return i
		}
	}
	fc.upvalues = append(fc.upvalues, upvalueRef{index: index, isLocal: isLocal})
	return len(fc.upvalues) - 1
}

// parseVariable consumes an identifier, declares it as a local if inside a
// scope, and returns the constant-pool index of its name for DEFINE_GLOBAL
// (0 and unused when the variable is local, §6.1).
func (p *parser) parseVariable(errMsg string) byte {
	p.consume(token.IDENT, errMsg)
	name := p.previous.Lexeme
	p.declareVariable(name)
	if p.fc.scopeDepth > 0 {
		return 0
	}
	return p.identifierConstant(name)
}

func (p *parser) identifierConstant(name string) byte {
	return p.makeConstant(stringValue(name))
}

func (p *parser) defineVariable(global byte) {
	if p.fc.scopeDepth > 0 {
		p.markInitialized()
		return
	}
	p.emitBytes(byte(chunk.DEFINE_GLOBAL), global)
}
