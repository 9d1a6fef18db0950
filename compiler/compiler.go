// Package compiler turns source text directly into a chunk.Chunk in a
// single pass: there is no intermediate AST. Parsing follows Pratt's
// operator-precedence scheme, with each token kind wired to a prefix
// and/or infix parse function plus a binding precedence.
package compiler

import (
	"errors"
	"fmt"

	"lox/chunk"
	"lox/lexer"
	"lox/opcode"
	"lox/token"
	"lox/value"
)

// Precedence orders binding power from loosest to tightest.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

// Higher returns the next tighter precedence level, saturating at
// PrecPrimary.
func (p Precedence) Higher() Precedence {
	if p == PrecPrimary {
		return PrecPrimary
	}
	return p + 1
}

// parseFn parses one grammar production starting at c.previous, emitting
// bytecode into c.chunk as it goes. canAssign is true only when the
// enclosing parsePrecedence call was entered at PrecAssignment or looser,
// so that "a = 1" is legal but "a + b = 1" is rejected.
type parseFn func(c *Compiler, canAssign bool) error

type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules = map[token.Kind]rule{
	token.LeftParen:    {prefix: grouping, precedence: PrecCall},
	token.Minus:        {prefix: unary, infix: binary, precedence: PrecTerm},
	token.Plus:         {infix: binary, precedence: PrecTerm},
	token.Slash:        {infix: binary, precedence: PrecFactor},
	token.Star:         {infix: binary, precedence: PrecFactor},
	token.Bang:         {prefix: unary},
	token.BangEqual:    {infix: binary, precedence: PrecEquality},
	token.EqualEqual:   {infix: binary, precedence: PrecEquality},
	token.Greater:      {infix: binary, precedence: PrecComparison},
	token.GreaterEqual: {infix: binary, precedence: PrecComparison},
	token.Less:         {infix: binary, precedence: PrecComparison},
	token.LessEqual:    {infix: binary, precedence: PrecComparison},
	token.Identifier:   {prefix: variable},
	token.String:       {prefix: stringLiteral},
	token.Number:       {prefix: number},
	token.False:        {prefix: literal},
	token.True:         {prefix: literal},
	token.Nil:          {prefix: literal},
	token.And:          {precedence: PrecAnd},
	token.Or:           {precedence: PrecOr},
}

func getRule(kind token.Kind) rule {
	return rules[kind]
}

// Compiler holds the single-pass parsing state: the token lookahead pair
// and the chunk being built. It consumes its lexer lazily, one token at a
// time, never materializing a token slice or an AST.
type Compiler struct {
	lex      *lexer.Lexer
	chnk     *chunk.Chunk
	previous token.Token
	current  token.Token
}

// Compile compiles source into a Chunk. It returns the partially built
// chunk alongside the first error encountered; there is no error recovery
// or multi-error reporting.
func Compile(source string) (*chunk.Chunk, error) {
	c := &Compiler{lex: lexer.New(source), chnk: chunk.New()}
	if err := c.advance(); err != nil {
		return c.chnk, err
	}
	for !c.check(token.EOF) {
		if err := c.declaration(); err != nil {
			return c.chnk, err
		}
	}
	return c.chnk, nil
}

func (c *Compiler) advance() error {
	c.previous = c.current
	c.current = c.lex.ScanToken()
	if c.current.Kind == token.Error {
		return &CompileError{Line: c.current.Line, Payload: PayloadScanner, Message: c.current.Lexeme}
	}
	return nil
}

func (c *Compiler) check(kind token.Kind) bool {
	return c.current.Kind == kind
}

// match consumes and reports true if the current token is kind, otherwise
// leaves it in place and reports false.
func (c *Compiler) match(kind token.Kind) (bool, error) {
	if !c.check(kind) {
		return false, nil
	}
	return true, c.advance()
}

func (c *Compiler) consume(kind token.Kind, message string) error {
	if c.check(kind) {
		return c.advance()
	}
	return &CompileError{Line: c.current.Line, Payload: PayloadUnexpectedToken, TokenKind: c.current.Kind, Message: message}
}

func (c *Compiler) emit(op opcode.Code, line int) {
	c.chnk.Write(byte(op), line)
}

func (c *Compiler) emit2(op opcode.Code, operand byte, line int) {
	c.chnk.Write(byte(op), line)
	c.chnk.Write(operand, line)
}

func (c *Compiler) constantError(err error) error {
	if errors.Is(err, chunk.ErrTooManyConstants) {
		return &CompileError{Line: c.previous.Line, Payload: PayloadTooManyConstants, Message: err.Error()}
	}
	return err
}

// declaration parses one top-level declaration: either a var binding or a
// plain statement. There is no block scoping to enter or leave.
func (c *Compiler) declaration() error {
	matched, err := c.match(token.Var)
	if err != nil {
		return err
	}
	if matched {
		return c.varDeclaration()
	}
	return c.statement()
}

func (c *Compiler) varDeclaration() error {
	if err := c.consume(token.Identifier, "Expect variable name"); err != nil {
		return err
	}
	name := c.previous
	idx, err := c.identifierConstant(name)
	if err != nil {
		return err
	}

	matched, err := c.match(token.Equal)
	if err != nil {
		return err
	}
	if matched {
		if err := c.expression(); err != nil {
			return err
		}
	} else {
		c.emit(opcode.NilOp, name.Line)
	}

	if err := c.consume(token.Semicolon, "Expect ';' after variable declaration"); err != nil {
		return err
	}
	c.emit2(opcode.DefineGlobal, byte(idx), name.Line)
	return nil
}

// statement parses a print statement or an expression statement, the only
// two statement forms this language has.
func (c *Compiler) statement() error {
	matched, err := c.match(token.Print)
	if err != nil {
		return err
	}
	if matched {
		line := c.previous.Line
		if err := c.expression(); err != nil {
			return err
		}
		if err := c.consume(token.Semicolon, "Expect ';' after value"); err != nil {
			return err
		}
		c.emit(opcode.Print, line)
		return nil
	}

	if err := c.expression(); err != nil {
		return err
	}
	line := c.previous.Line
	if err := c.consume(token.Semicolon, "Expect ';' after expression"); err != nil {
		return err
	}
	c.emit(opcode.Pop, line)
	return nil
}

func (c *Compiler) expression() error {
	return c.parsePrecedence(PrecAssignment)
}

// parsePrecedence is the Pratt engine's core loop: parse a prefix
// production, then keep folding in infix productions as long as the
// lookahead token binds at least as tightly as prec.
func (c *Compiler) parsePrecedence(prec Precedence) error {
	if err := c.advance(); err != nil {
		return err
	}
	prefix := getRule(c.previous.Kind).prefix
	if prefix == nil {
		return &CompileError{Line: c.previous.Line, Payload: PayloadParser, Message: "Expect expression"}
	}
	canAssign := prec <= PrecAssignment
	if err := prefix(c, canAssign); err != nil {
		return err
	}

	for getRule(c.current.Kind).precedence >= prec && getRule(c.current.Kind).precedence != PrecNone {
		if err := c.advance(); err != nil {
			return err
		}
		infix := getRule(c.previous.Kind).infix
		if infix == nil {
			return &CompileError{Line: c.previous.Line, Payload: PayloadParser, Message: "Invalid syntax"}
		}
		if err := infix(c, canAssign); err != nil {
			return err
		}
	}

	if canAssign && c.check(token.Equal) {
		if err := c.advance(); err != nil {
			return err
		}
		_ = c.expression() // best-effort recovery; result is discarded
		return &CompileError{Line: c.previous.Line, Payload: PayloadParser, Message: "Invalid assignment target"}
	}
	return nil
}

func (c *Compiler) identifierConstant(name token.Token) (int, error) {
	idx, err := c.chnk.AddConstant(value.FromObject(value.NewString(name.Lexeme)))
	if err != nil {
		return 0, c.constantError(err)
	}
	return idx, nil
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) error {
	idx, err := c.identifierConstant(name)
	if err != nil {
		return err
	}

	matched, err := func() (bool, error) {
		if !canAssign {
			return false, nil
		}
		return c.match(token.Equal)
	}()
	if err != nil {
		return err
	}
	if matched {
		if err := c.expression(); err != nil {
			return err
		}
		c.emit2(opcode.SetGlobal, byte(idx), name.Line)
		return nil
	}

	c.emit2(opcode.GetGlobal, byte(idx), name.Line)
	return nil
}

func grouping(c *Compiler, _ bool) error {
	if err := c.expression(); err != nil {
		return err
	}
	return c.consume(token.RightParen, "Expect ')' after expression")
}

func unary(c *Compiler, _ bool) error {
	opKind := c.previous.Kind
	line := c.previous.Line
	if err := c.parsePrecedence(PrecUnary); err != nil {
		return err
	}
	switch opKind {
	case token.Minus:
		c.emit(opcode.Negate, line)
	case token.Bang:
		c.emit(opcode.Not, line)
	}
	return nil
}

func binary(c *Compiler, _ bool) error {
	opKind := c.previous.Kind
	line := c.previous.Line
	r := getRule(opKind)
	if err := c.parsePrecedence(r.precedence.Higher()); err != nil {
		return err
	}
	switch opKind {
	case token.Plus:
		c.emit(opcode.Add, line)
	case token.Minus:
		c.emit(opcode.Subtract, line)
	case token.Star:
		c.emit(opcode.Multiply, line)
	case token.Slash:
		c.emit(opcode.Divide, line)
	case token.EqualEqual:
		c.emit(opcode.Equal, line)
	case token.BangEqual:
		c.emit(opcode.Equal, line)
		c.emit(opcode.Not, line)
	case token.Less:
		c.emit(opcode.Less, line)
	case token.LessEqual:
		c.emit(opcode.Greater, line)
		c.emit(opcode.Not, line)
	case token.Greater:
		c.emit(opcode.Greater, line)
	case token.GreaterEqual:
		c.emit(opcode.Less, line)
		c.emit(opcode.Not, line)
	default:
		return fmt.Errorf("compiler: unreachable binary operator %s", opKind)
	}
	return nil
}

func literal(c *Compiler, _ bool) error {
	line := c.previous.Line
	switch c.previous.Kind {
	case token.False:
		c.emit(opcode.False, line)
	case token.True:
		c.emit(opcode.True, line)
	case token.Nil:
		c.emit(opcode.NilOp, line)
	}
	return nil
}

func number(c *Compiler, _ bool) error {
	n, err := lexer.ParseNumber(c.previous.Lexeme)
	if err != nil {
		return &CompileError{Line: c.previous.Line, Payload: PayloadParser, Message: "Invalid number literal"}
	}
	if _, err := c.chnk.WriteConstant(value.Number(n), c.previous.Line); err != nil {
		return c.constantError(err)
	}
	return nil
}

func stringLiteral(c *Compiler, _ bool) error {
	lexeme := c.previous.Lexeme
	s := lexeme[1 : len(lexeme)-1] // strip the surrounding quotes
	if _, err := c.chnk.WriteConstant(value.FromObject(value.NewString(s)), c.previous.Line); err != nil {
		return c.constantError(err)
	}
	return nil
}

func variable(c *Compiler, canAssign bool) error {
	return c.namedVariable(c.previous, canAssign)
}
