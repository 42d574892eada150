// Package parser implements a recursive-descent parser producing
// internal/ast trees. Structure follows sentra's Parser closely (a flat
// token slice, a current cursor, match/check/consume/advance helpers,
// syntax errors raised by panic and recovered at the entry point) grafted
// onto the original grammar's precedence levels: or, then and, then the
// relational operators, then + -, then * /, then unary not/-.
package parser

import (
	"fmt"

	"rua/internal/ast"
	"rua/internal/token"
)

// syntaxPanic is the payload a parse error panics with; Parse recovers it
// at the top level and turns it into a returned error.
type syntaxPanic struct{ err error }

type Parser struct {
	tokens  []token.Token
	current int
}

func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the entire token stream as one block (the implicit
// top-level function body) and returns its AST, or the first syntax
// error encountered.
func (p *Parser) Parse() (block *ast.Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			if sp, ok := r.(syntaxPanic); ok {
				err = sp.err
				return
			}
			panic(r)
		}
	}()
	block = p.block()
	p.consume(token.EOF, "expected end of input")
	return block, nil
}

// block = {stat} [retstat]
func (p *Parser) block() *ast.Block {
	b := &ast.Block{}
	for !p.blockFollows() {
		if p.check(token.Return) {
			b.Ret = p.retStat()
			break
		}
		b.Stats = append(b.Stats, p.stat())
	}
	return b
}

// blockFollows reports whether the current token can only end a block:
// end-of-input or a keyword that closes an enclosing construct.
func (p *Parser) blockFollows() bool {
	switch p.peek().Type {
	case token.EOF, token.End, token.Else, token.Elseif:
		return true
	}
	return false
}

func (p *Parser) stat() ast.Stat {
	switch {
	case p.match(token.Break):
		return ast.BreakStat{}

	case p.match(token.Local):
		names := p.nameList()
		var values []ast.Expr
		if p.match(token.Assign) {
			values = p.exprList()
		}
		return ast.AssignLocal{Names: names, Values: values}

	case p.match(token.If):
		return p.ifStat()

	case p.match(token.While):
		cond := p.expr()
		p.consume(token.Do, "expected 'do' after while condition")
		body := p.block()
		p.consume(token.End, "expected 'end' to close while")
		return ast.While{Cond: cond, Body: body}

	case p.match(token.For):
		return p.forStat()

	case p.check(token.Ident):
		return p.assignStat()

	default:
		p.fail("unexpected token %q starting a statement", p.peek().Lexeme)
		return nil
	}
}

func (p *Parser) ifStat() ast.Stat {
	cond := p.expr()
	p.consume(token.Then, "expected 'then' after if condition")
	then := p.block()

	stmt := ast.IfElse{Cond: cond, Then: then}
	for p.match(token.Elseif) {
		c := p.expr()
		p.consume(token.Then, "expected 'then' after elseif condition")
		body := p.block()
		stmt.ElseIf = append(stmt.ElseIf, ast.ElseIfClause{Cond: c, Body: body})
	}
	if p.match(token.Else) {
		stmt.Else = p.block()
	}
	p.consume(token.End, "expected 'end' to close if")
	return stmt
}

func (p *Parser) forStat() ast.Stat {
	name := p.consume(token.Ident, "expected loop variable name").Lexeme
	p.consume(token.Assign, "expected '=' after for-loop variable")
	start := p.expr()
	p.consume(token.Comma, "expected ',' after for-loop start value")
	stop := p.expr()
	var step ast.Expr
	if p.match(token.Comma) {
		step = p.expr()
	}
	p.consume(token.Do, "expected 'do' after for-loop header")
	body := p.block()
	p.consume(token.End, "expected 'end' to close for")
	return ast.ForRange{Var: name, Start: start, Stop: stop, Step: step, Body: body}
}

// assignStat disambiguates "name, name... = expr, expr..." (plain
// assignment) by scanning ahead for the '=' past any comma-separated
// names; a function call used as a bare statement is not in the grammar
// this generator accepts, so failing to find '=' is a syntax error.
func (p *Parser) assignStat() ast.Stat {
	targets := []ast.VarNode{ast.NameVar{Name: p.advance().Lexeme}}
	for p.match(token.Comma) {
		targets = append(targets, ast.NameVar{Name: p.consume(token.Ident, "expected variable name").Lexeme})
	}
	p.consume(token.Assign, "expected '=' in assignment")
	values := p.exprList()
	return ast.Assign{Targets: targets, Values: values}
}

func (p *Parser) retStat() *ast.RetStat {
	p.consume(token.Return, "expected 'return'")
	ret := &ast.RetStat{}
	if !p.blockFollows() {
		ret.Values = p.exprList()
	}
	return ret
}

func (p *Parser) nameList() []ast.Name {
	names := []ast.Name{p.consume(token.Ident, "expected name").Lexeme}
	for p.match(token.Comma) {
		names = append(names, p.consume(token.Ident, "expected name").Lexeme)
	}
	return names
}

func (p *Parser) exprList() []ast.Expr {
	exprs := []ast.Expr{p.expr()}
	for p.match(token.Comma) {
		exprs = append(exprs, p.expr())
	}
	return exprs
}

// --- expressions, precedence climbing outward from the original grammar's
// factor -> term -> logical_term -> cmp -> conj -> disj chain ---

func (p *Parser) expr() ast.Expr {
	return p.disjunction()
}

func (p *Parser) disjunction() ast.Expr {
	left := p.conjunction()
	for p.match(token.Or) {
		right := p.conjunction()
		left = ast.BinOp{Op: "or", Left: left, Right: right}
	}
	return left
}

func (p *Parser) conjunction() ast.Expr {
	left := p.comparison()
	for p.match(token.And) {
		right := p.comparison()
		left = ast.BinOp{Op: "and", Left: left, Right: right}
	}
	return left
}

var comparisonOps = map[token.Type]string{
	token.LT:  "<",
	token.LE:  "<=",
	token.GT:  ">",
	token.GE:  ">=",
	token.Eq:  "==",
	token.Neq: "~=",
}

func (p *Parser) comparison() ast.Expr {
	left := p.term()
	for {
		op, ok := comparisonOps[p.peek().Type]
		if !ok {
			return left
		}
		p.advance()
		right := p.term()
		left = ast.BinOp{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) term() ast.Expr {
	left := p.factor()
	for p.check(token.Plus) || p.check(token.Minus) {
		op := p.advance().Lexeme
		right := p.factor()
		left = ast.BinOp{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) factor() ast.Expr {
	left := p.unary()
	for p.check(token.Star) || p.check(token.Slash) {
		op := p.advance().Lexeme
		right := p.unary()
		left = ast.BinOp{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Not) {
		return ast.UnaryOp{Op: "not", Operand: p.unary()}
	}
	if p.match(token.Minus) {
		return ast.UnaryOp{Op: "-", Operand: p.unary()}
	}
	return p.call()
}

// call parses a primary expression followed by zero or more call suffixes
// ("(args)"), each wrapping the previous result as the new callee.
func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for p.check(token.LParen) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	p.consume(token.LParen, "expected '('")
	var args []ast.Expr
	if !p.check(token.RParen) {
		args = p.exprList()
	}
	p.consume(token.RParen, "expected ')' to close call arguments")
	return ast.FunctionCall{Callee: callee, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.Number):
		return ast.Num{Value: parseNumber(p.previous().Lexeme)}
	case p.match(token.String):
		return ast.Str{Value: p.previous().Lexeme}
	case p.match(token.True):
		return ast.Boole{Value: true}
	case p.match(token.False):
		return ast.Boole{Value: false}
	case p.match(token.Ident):
		return ast.Var{Var: ast.NameVar{Name: p.previous().Lexeme}}
	case p.match(token.LParen):
		e := p.expr()
		p.consume(token.RParen, "expected ')' to close parenthesized expression")
		return e
	case p.match(token.Function):
		return p.functionDef()
	default:
		p.fail("unexpected token %q in expression", p.peek().Lexeme)
		return nil
	}
}

func (p *Parser) functionDef() ast.Expr {
	p.consume(token.LParen, "expected '(' after 'function'")
	var params []ast.Name
	variadic := false
	if !p.check(token.RParen) {
		for {
			if p.match(token.DotDotDot) {
				variadic = true
				break
			}
			params = append(params, p.consume(token.Ident, "expected parameter name").Lexeme)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RParen, "expected ')' after parameter list")
	body := p.block()
	p.consume(token.End, "expected 'end' to close function body")
	return ast.FunctionDef{Params: params, Variadic: variadic, Body: body}
}

// --- utility methods ---

func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	return p.peek().Type == t
}

func (p *Parser) consume(t token.Type, msg string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.fail("%s (got %q)", msg, p.peek().Lexeme)
	return token.Token{}
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Type != token.EOF {
		p.current++
	}
	return tok
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) fail(format string, args ...any) {
	tok := p.peek()
	panic(syntaxPanic{err: fmt.Errorf("line %d: %s", tok.Line, fmt.Sprintf(format, args...))})
}

func parseNumber(lexeme string) float64 {
	var n float64
	fmt.Sscanf(lexeme, "%g", &n)
	return n
}
