package compiler

import (
	"github.com/mna/ghost/lang/chunk"
	"github.com/mna/ghost/lang/token"
	"github.com/mna/ghost/lang/value"
)

// declaration parses one top-level-or-block production and recovers from a
// syntax error by synchronizing to the next statement boundary, so one bad
// statement does not abort compiling the rest of the file (§6.1 "panic-mode
// recovery").
func (p *parser) declaration() {
	defer p.synchronize()

	switch {
	case p.match(token.CLASS):
		p.classDeclaration()
	case p.match(token.FUNCTION):
		p.funDeclaration()
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.statement()
	}
}

func (p *parser) statement() {
	switch {
	case p.match(token.PRINT):
		p.printStatement()
	case p.match(token.IF):
		p.ifStatement()
	case p.match(token.WHILE):
		p.whileStatement()
	case p.match(token.FOR):
		p.forStatement()
	case p.match(token.RETURN):
		p.returnStatement()
	case p.match(token.LBRACE):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

func (p *parser) block() {
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.RBRACE, "expected '}' after block")
}

func (p *parser) varDeclaration() {
	global := p.parseVariable("expected variable name")

	if p.match(token.EQ) {
		p.expression()
	} else {
		p.emitByte(byte(chunk.NULL))
	}
	p.consume(token.SEMI, "expected ';' after variable declaration")
	p.defineVariable(global)
}

func (p *parser) expressionStatement() {
	p.expression()
	p.consume(token.SEMI, "expected ';' after expression")
	p.emitByte(byte(chunk.POP))
}

func (p *parser) printStatement() {
	p.expression()
	p.consume(token.SEMI, "expected ';' after value")
	p.emitByte(byte(chunk.PRINT))
}

func (p *parser) returnStatement() {
	if p.fc.kind == funcScript {
		p.error("can't return from top-level code")
	}

	if p.match(token.SEMI) {
		p.emitReturn()
		return
	}
	if p.fc.kind == funcInitializer {
		p.error("can't return a value from an initializer")
	}
	p.expression()
	p.consume(token.SEMI, "expected ';' after return value")
	p.emitByte(byte(chunk.RETURN))
}

func (p *parser) ifStatement() {
	p.consume(token.LPAREN, "expected '(' after 'if'")
	p.expression()
	p.consume(token.RPAREN, "expected ')' after condition")

	thenJump := p.emitJump(chunk.JUMP_IF_FALSE)
	p.emitByte(byte(chunk.POP))
	p.statement()

	elseJump := p.emitJump(chunk.JUMP)
	p.patchJump(thenJump)
	p.emitByte(byte(chunk.POP))

	if p.match(token.ELSE) {
		p.statement()
	}
	p.patchJump(elseJump)
}

func (p *parser) whileStatement() {
	loopStart := len(p.currentChunk().Code)
	p.consume(token.LPAREN, "expected '(' after 'while'")
	p.expression()
	p.consume(token.RPAREN, "expected ')' after condition")

	exitJump := p.emitJump(chunk.JUMP_IF_FALSE)
	p.emitByte(byte(chunk.POP))
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emitByte(byte(chunk.POP))
}

// forStatement desugars the classic three-clause for loop entirely into
// JUMP/LOOP instructions built from while's own building blocks (§6.3
// "Supplemented: for loops") — there is no FOR opcode.
func (p *parser) forStatement() {
	p.beginScope()
	p.consume(token.LPAREN, "expected '(' after 'for'")

	switch {
	case p.match(token.SEMI):
		// no initializer
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.expressionStatement()
	}

	loopStart := len(p.currentChunk().Code)
	exitJump := -1
	if !p.match(token.SEMI) {
		p.expression()
		p.consume(token.SEMI, "expected ';' after loop condition")
		exitJump = p.emitJump(chunk.JUMP_IF_FALSE)
		p.emitByte(byte(chunk.POP))
	}

	if !p.check(token.RPAREN) {
		bodyJump := p.emitJump(chunk.JUMP)
		incrementStart := len(p.currentChunk().Code)
		p.expression()
		p.emitByte(byte(chunk.POP))
		p.consume(token.RPAREN, "expected ')' after for clauses")

		p.emitLoop(loopStart)
		loopStart = incrementStart
		p.patchJump(bodyJump)
	} else {
		p.consume(token.RPAREN, "expected ')' after for clauses")
	}

	p.statement()
	p.emitLoop(loopStart)

	if exitJump != -1 {
		p.patchJump(exitJump)
		p.emitByte(byte(chunk.POP))
	}
	p.endScope()
}

func (p *parser) funDeclaration() {
	global := p.parseVariable("expected function name")
	p.markInitialized()
	p.function(funcFunction)
	p.defineVariable(global)
}

// function compiles one function body (a declaration, or a method inside a
// class) into its own ObjFunction and leaves a CLOSURE instruction in the
// enclosing chunk that builds its runtime Closure (§4.3, §6.2 "OP_CLOSURE").
func (p *parser) function(kind funcType) {
	name := p.previous.Lexeme
	fc := newFuncCompiler(p.fc, kind, name)
	p.fc = fc
	p.beginScope()

	p.consume(token.LPAREN, "expected '(' after function name")
	if !p.check(token.RPAREN) {
		for {
			p.fc.function.Arity++
			if p.fc.function.Arity > 255 {
				p.error("can't have more than 255 parameters")
			}
			constant := p.parseVariable("expected parameter name")
			p.defineVariable(constant)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "expected ')' after parameters")
	p.consume(token.LBRACE, "expected '{' before function body")
	p.block()

	fn := p.endFunction()
	upvalues := fc.upvalues

	p.emitBytes(byte(chunk.CLOSURE), p.makeConstant(value.Obj(fn)))
	for _, up := range upvalues {
		isLocal := byte(0)
		if up.isLocal {
			isLocal = 1
		}
		p.emitByte(isLocal)
		p.emitByte(up.index)
	}
}

func (p *parser) classDeclaration() {
	p.consume(token.IDENT, "expected class name")
	name := p.previous.Lexeme
	nameConstant := p.identifierConstant(name)
	p.declareVariable(name)

	p.emitBytes(byte(chunk.CLASS), nameConstant)
	p.defineVariable(nameConstant)

	cc := &classCompiler{enclosing: p.class}
	p.class = cc

	if p.match(token.LT) {
		p.consume(token.IDENT, "expected superclass name")
		variable(p, false)
		if p.previous.Lexeme == name {
			p.error("a class can't inherit from itself")
		}

		// A hidden scope holding a synthetic local named "super" lets every
		// method close over the superclass as an upvalue (§3.2, §6.1 "super
		// binding"), the same mechanism `this` uses for the receiver.
		p.beginScope()
		p.addLocal("super")
		p.defineVariable(0)

		p.namedVariable(name, false)
		p.emitByte(byte(chunk.INHERIT))
		cc.hasSuperclass = true
	}

	p.namedVariable(name, false)
	p.consume(token.LBRACE, "expected '{' before class body")
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		p.method()
	}
	p.consume(token.RBRACE, "expected '}' after class body")
	p.emitByte(byte(chunk.POP))

	if cc.hasSuperclass {
		p.endScope()
	}
	p.class = p.class.enclosing
}

func (p *parser) method() {
	p.consume(token.IDENT, "expected method name")
	name := p.previous.Lexeme
	constant := p.identifierConstant(name)

	kind := funcMethod
	if name == "init" {
		kind = funcInitializer
	}
	p.function(kind)
	p.emitBytes(byte(chunk.METHOD), constant)
}
