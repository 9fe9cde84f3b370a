package compiler

import (
	"strconv"

	"github.com/mna/ghost/lang/chunk"
	"github.com/mna/ghost/lang/token"
	"github.com/mna/ghost/lang/value"
)

// precedence mirrors clox's single linear table, lowest to highest (§6.1
// "Expression grammar"); and/or's short-circuiting is implemented as ordinary
// infix rules at their own precedence levels rather than special-cased in
// the statement grammar (§6.3 "Supplemented: and/or").
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . () []
	precPrimary
)

type (
	prefixFn func(p *parser, canAssign bool)
	infixFn  func(p *parser, canAssign bool)
)

type rule struct {
	prefix     prefixFn
	infix      infixFn
	precedence precedence
}

var rules map[token.Kind]rule

func init() {
	rules = map[token.Kind]rule{
		token.LPAREN:   {prefix: grouping, infix: call, precedence: precCall},
		token.LBRACK:   {prefix: listLiteral, infix: subscript, precedence: precCall},
		token.DOT:      {infix: dot, precedence: precCall},
		token.MINUS:    {prefix: unary, infix: binary, precedence: precTerm},
		token.PLUS:     {infix: binary, precedence: precTerm},
		token.SLASH:    {infix: binary, precedence: precFactor},
		token.STAR:     {infix: binary, precedence: precFactor},
		token.BANG:     {prefix: unary},
		token.BANG_EQ:  {infix: binary, precedence: precEquality},
		token.EQ_EQ:    {infix: binary, precedence: precEquality},
		token.GT:       {infix: binary, precedence: precComparison},
		token.GT_EQ:    {infix: binary, precedence: precComparison},
		token.LT:       {infix: binary, precedence: precComparison},
		token.LT_EQ:    {infix: binary, precedence: precComparison},
		token.IDENT:    {prefix: variable},
		token.STRING:   {prefix: stringLiteral},
		token.NUMBER:   {prefix: number},
		token.AND:      {infix: and_, precedence: precAnd},
		token.OR:       {infix: or_, precedence: precOr},
		token.FALSE:    {prefix: literal},
		token.TRUE:     {prefix: literal},
		token.NULL:     {prefix: literal},
		token.THIS:     {prefix: this},
		token.SUPER:    {prefix: super},
	}
}

func getRule(k token.Kind) rule { return rules[k] }

// expression parses the lowest-precedence production: assignment.
func (p *parser) expression() {
	p.parsePrecedence(precAssignment)
}

// parsePrecedence is the heart of the Pratt parser: consume a token, run
// its prefix rule, then keep consuming infix operators whose precedence is
// at least prec (§6.1 "Pratt parsing").
func (p *parser) parsePrecedence(prec precedence) {
	p.advance()
	prefix := getRule(p.previous.Kind).prefix
	if prefix == nil {
		p.error("expected expression")
		return
	}

	canAssign := prec <= precAssignment
	prefix(p, canAssign)

	for prec <= getRule(p.current.Kind).precedence {
		p.advance()
		infix := getRule(p.previous.Kind).infix
		infix(p, canAssign)
	}

	if canAssign && p.match(token.EQ) {
		p.error("invalid assignment target")
	}
}

func number(p *parser, _ bool) {
	n, err := strconv.ParseFloat(p.previous.Lexeme, 64)
	if err != nil {
		p.error("invalid number literal")
		return
	}
	p.emitConstant(value.Number(n))
}

// stringLiteral strips the surrounding quotes the scanner left in Lexeme
// (§6.1 "no escape sequences").
func stringLiteral(p *parser, _ bool) {
	s := p.previous.Lexeme
	p.emitConstant(stringValue(s[1 : len(s)-1]))
}

func literal(p *parser, _ bool) {
	switch p.previous.Kind {
	case token.FALSE:
		p.emitByte(byte(chunk.FALSE))
	case token.TRUE:
		p.emitByte(byte(chunk.TRUE))
	case token.NULL:
		p.emitByte(byte(chunk.NULL))
	}
}

func grouping(p *parser, _ bool) {
	p.expression()
	p.consume(token.RPAREN, "expected ')' after expression")
}

func unary(p *parser, _ bool) {
	op := p.previous.Kind
	p.parsePrecedence(precUnary)
	switch op {
	case token.MINUS:
		p.emitByte(byte(chunk.NEGATE))
	case token.BANG:
		p.emitByte(byte(chunk.NOT))
	}
}

func binary(p *parser, _ bool) {
	op := p.previous.Kind
	r := getRule(op)
	p.parsePrecedence(r.precedence + 1)

	switch op {
	case token.BANG_EQ:
		p.emitBytes(byte(chunk.EQUAL), byte(chunk.NOT))
	case token.EQ_EQ:
		p.emitByte(byte(chunk.EQUAL))
	case token.GT:
		p.emitByte(byte(chunk.GREATER))
	case token.GT_EQ:
		p.emitBytes(byte(chunk.LESS), byte(chunk.NOT))
	case token.LT:
		p.emitByte(byte(chunk.LESS))
	case token.LT_EQ:
		p.emitBytes(byte(chunk.GREATER), byte(chunk.NOT))
	case token.PLUS:
		p.emitByte(byte(chunk.ADD))
	case token.MINUS:
		p.emitByte(byte(chunk.SUBTRACT))
	case token.STAR:
		p.emitByte(byte(chunk.MULTIPLY))
	case token.SLASH:
		p.emitByte(byte(chunk.DIVIDE))
	}
}

// and_ short-circuits: if the left operand is falsey, skip the right
// operand entirely, leaving the falsey value as the result (§6.3
// "Supplemented: and/or").
func and_(p *parser, _ bool) {
	endJump := p.emitJump(chunk.JUMP_IF_FALSE)
	p.emitByte(byte(chunk.POP))
	p.parsePrecedence(precAnd)
	p.patchJump(endJump)
}

// or_ short-circuits the opposite way: if the left operand is truthy, skip
// the right operand.
func or_(p *parser, _ bool) {
	elseJump := p.emitJump(chunk.JUMP_IF_FALSE)
	endJump := p.emitJump(chunk.JUMP)
	p.patchJump(elseJump)
	p.emitByte(byte(chunk.POP))
	p.parsePrecedence(precOr)
	p.patchJump(endJump)
}

func variable(p *parser, canAssign bool) {
	p.namedVariable(p.previous.Lexeme, canAssign)
}

func (p *parser) namedVariable(name string, canAssign bool) {
	var getOp, setOp chunk.Op
	var arg int
	if slot := resolveLocal(p, p.fc, name); slot != -1 {
		getOp, setOp, arg = chunk.GET_LOCAL, chunk.SET_LOCAL, slot
	} else if slot := resolveUpvalue(p, p.fc, name); slot != -1 {
		getOp, setOp, arg = chunk.GET_UPVALUE, chunk.SET_UPVALUE, slot
	} else {
		getOp, setOp, arg = chunk.GET_GLOBAL, chunk.SET_GLOBAL, int(p.identifierConstant(name))
	}

	if canAssign && p.match(token.EQ) {
		p.expression()
		p.emitBytes(byte(setOp), byte(arg))
	} else {
		p.emitBytes(byte(getOp), byte(arg))
	}
}

func this(p *parser, _ bool) {
	if p.class == nil {
		p.error("can't use 'this' outside of a class")
		return
	}
	variable(p, false)
}

func super(p *parser, _ bool) {
	if p.class == nil {
		p.error("can't use 'super' outside of a class")
	} else if !p.class.hasSuperclass {
		p.error("can't use 'super' in a class with no superclass")
	}

	p.consume(token.DOT, "expected '.' after 'super'")
	p.consume(token.IDENT, "expected superclass method name")
	name := p.identifierConstant(p.previous.Lexeme)

	p.namedVariable("this", false)
	p.namedVariable("super", false)
	p.emitBytes(byte(chunk.GET_SUPER), name)
}

func call(p *parser, _ bool) {
	argCount := p.argumentList()
	p.emitBytes(byte(chunk.CALL), argCount)
}

func (p *parser) argumentList() byte {
	var count int
	if !p.check(token.RPAREN) {
		for {
			p.expression()
			if count == 255 {
				p.error("can't have more than 255 arguments")
			}
			count++
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "expected ')' after arguments")
	return byte(count)
}

func dot(p *parser, canAssign bool) {
	p.consume(token.IDENT, "expected property name after '.'")
	name := p.identifierConstant(p.previous.Lexeme)

	switch {
	case canAssign && p.match(token.EQ):
		p.expression()
		p.emitBytes(byte(chunk.SET_PROPERTY), name)
	case p.match(token.LPAREN):
		argCount := p.argumentList()
		p.emitBytes(byte(chunk.INVOKE), name)
		p.emitByte(argCount)
	default:
		p.emitBytes(byte(chunk.GET_PROPERTY), name)
	}
}

// listLiteral parses a bracketed, comma-separated expression list into a
// single BUILD_LIST instruction (§6.3 "Supplemented: list literal").
func listLiteral(p *parser, _ bool) {
	var count int
	if !p.check(token.RBRACK) {
		for {
			p.expression()
			count++
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RBRACK, "expected ']' after list elements")
	if count > 0xffff {
		p.error("too many elements in list literal")
	}
	p.emitByte(byte(chunk.BUILD_LIST))
	var b [2]byte
	b[0] = byte(count >> 8)
	b[1] = byte(count)
	p.emitByte(b[0])
	p.emitByte(b[1])
}

// subscript parses `[` index `]`, compiling to INDEX_SUBSCR or, if followed
// by `=`, STORE_SUBSCR (§6.3 "Supplemented: list subscript").
func subscript(p *parser, canAssign bool) {
	p.expression()
	p.consume(token.RBRACK, "expected ']' after index")

	if canAssign && p.match(token.EQ) {
		p.expression()
		p.emitByte(byte(chunk.STORE_SUBSCR))
	} else {
		p.emitByte(byte(chunk.INDEX_SUBSCR))
	}
}
