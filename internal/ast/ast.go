// Package ast defines the syntax tree the code generator consumes. The
// shapes mirror the original parser's Expr/Var/Stat/Block union types
// one-to-one, expressed as Go interfaces with a closed set of concrete
// implementations rather than Rust enums.
package ast

// Name is a bare identifier, used both as a variable reference and as a
// binding target.
type Name = string

// Expr is any expression node.
type Expr interface{ exprNode() }

// Num is a numeric literal.
type Num struct{ Value float64 }

// Str is a string literal.
type Str struct{ Value string }

// Boole is a boolean literal.
type Boole struct{ Value bool }

// Var wraps a variable reference (bare name, indexing/field access, or an
// already-resolved register) so it can appear wherever an Expr or a
// statement's assignment target is expected.
type Var struct{ Var VarNode }

// BinOp is a binary operation: arithmetic (+ - * /), relational
// (< <= > >= == ~=), or logical (and/or).
type BinOp struct {
	Op    string
	Left  Expr
	Right Expr
}

// UnaryOp is a unary operation: arithmetic negation (-) or logical
// negation (not).
type UnaryOp struct {
	Op      string
	Operand Expr
}

// FunctionDef is a function literal: parameter list, variadic flag, and body.
type FunctionDef struct {
	Params   []Name
	Variadic bool
	Body     *Block
}

// FunctionCall is a call expression: a callee expression plus argument list.
type FunctionCall struct {
	Callee Expr
	Args   []Expr
}

func (Num) exprNode()          {}
func (Str) exprNode()          {}
func (Boole) exprNode()        {}
func (Var) exprNode()          {}
func (BinOp) exprNode()        {}
func (UnaryOp) exprNode()      {}
func (FunctionDef) exprNode()  {}
func (FunctionCall) exprNode() {}

// VarNode is any of the forms a variable reference can take.
type VarNode interface{ varNode() }

// NameVar is a bare identifier reference, resolved against the symbol
// table (Local, UpValue, or Global).
type NameVar struct{ Name Name }

// PrefixVar is a variable reached through a prefix expression — today only
// the result of a function call used as an lvalue-adjacent reference (e.g.
// the base of a call chain); table/field indexing is out of scope.
type PrefixVar struct{ Prefix PrefixExpr }

// RegVar is an already-resolved register, produced internally by the
// generator when it needs to feed a concrete register back through code
// that expects a VarNode (never produced by a parser).
type RegVar struct{ Reg uint32 }

func (NameVar) varNode()   {}
func (PrefixVar) varNode() {}
func (RegVar) varNode()    {}

// PrefixExpr is an expression usable as the base of indexing or a call
// chain: a nested call, a variable, or a parenthesized "other" expression.
type PrefixExpr interface{ prefixNode() }

// CallPrefix is a function call used as a prefix expression.
type CallPrefix struct{ Call FunctionCall }

// VarPrefix is a variable reference used as a prefix expression.
type VarPrefix struct{ Var VarNode }

// OtherPrefix is any other parenthesized expression used as a prefix.
type OtherPrefix struct{ Expr Expr }

func (CallPrefix) prefixNode()  {}
func (VarPrefix) prefixNode()   {}
func (OtherPrefix) prefixNode() {}

// Stat is any statement node.
type Stat interface{ statNode() }

// EmptyStat is a no-op statement (e.g. a bare semicolon).
type EmptyStat struct{}

// BreakStat exits the innermost enclosing loop. Parsed but, per scope,
// never lowered by the generator (see Unimplemented in compileerr).
type BreakStat struct{}

// Assign assigns a value to an existing variable (local or global).
type Assign struct {
	Targets []VarNode
	Values  []Expr
}

// AssignLocal declares one or more new local variables and initializes them.
type AssignLocal struct {
	Names  []Name
	Values []Expr
}

// IfElse is an if/elseif*/else chain. Parsed but never lowered by the
// generator (see Unimplemented in compileerr).
type IfElse struct {
	Cond   Expr
	Then   *Block
	ElseIf []ElseIfClause
	Else   *Block // nil if no else clause
}

// ElseIfClause is one elseif arm of an IfElse chain.
type ElseIfClause struct {
	Cond Expr
	Body *Block
}

// While is a condition-first loop. Parsed but never lowered by the
// generator (see Unimplemented in compileerr).
type While struct {
	Cond Expr
	Body *Block
}

// ForRange is a numeric for loop (start, stop, optional step). Parsed but
// never lowered by the generator (see Unimplemented in compileerr).
type ForRange struct {
	Var   Name
	Start Expr
	Stop  Expr
	Step  Expr // nil if omitted
	Body  *Block
}

// RetStat returns zero or more values from the enclosing function.
type RetStat struct{ Values []Expr }

func (EmptyStat) statNode()   {}
func (BreakStat) statNode()   {}
func (Assign) statNode()      {}
func (AssignLocal) statNode() {}
func (IfElse) statNode()      {}
func (While) statNode()       {}
func (ForRange) statNode()    {}
func (RetStat) statNode()     {}

// Block is a sequence of statements followed by an optional return
// statement, the unit the generator compiles one scope at a time.
type Block struct {
	Stats []Stat
	Ret   *RetStat // nil if the block has no explicit return
}

// Node is either an Expr or a Block.
type Node interface{ nodeUnit() }

func (*Block) nodeUnit() {}

// ExprNode adapts an Expr into a Node. The generator's entry point,
// codegen.Generator.Compile, accepts only a *Block; nothing in this module
// compiles an ExprNode.
type ExprNode struct{ Expr Expr }

func (ExprNode) nodeUnit() {}
