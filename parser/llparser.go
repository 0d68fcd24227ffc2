package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/panyam/wea/decl"

	gfn "github.com/panyam/goutils/fn"
)

const DefaultMaxErrors = 50

// Parser is a hand written recursive descent parser over a token slice.
// Syntax errors are collected in Errors and parsing resumes at the next
// statement boundary so one pass reports as many problems as possible.
type Parser struct {
	tokens  []Token
	current int
	depth   int // nesting of blocks currently being parsed
	halted  bool

	MaxErrors int
	Errors    []error
}

func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, Token{Kind: EOF, Line: line})
	}
	return &Parser{tokens: tokens, MaxErrors: DefaultMaxErrors}
}

// Parse parses a token stream into statements.  The statements are a best
// effort when errors is non-empty.
func Parse(tokens []Token) ([]Stmt, []error) {
	p := NewParser(tokens)
	stmts := p.Parse()
	return stmts, p.Errors
}

// ParseSource tokenizes and parses source.  A scan error is returned as the
// only error.
func ParseSource(source string) ([]Stmt, []error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, []error{err}
	}
	return Parse(tokens)
}

func (p *Parser) Parse() (stmts []Stmt) {
	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return
}

// declaration parses one declaration, recording and recovering from any error.
func (p *Parser) declaration() Stmt {
	start := p.current
	stmt, err := p.ParseDeclaration()
	if err != nil {
		p.addError(err)
		p.synchronize(start)
		return nil
	}
	return stmt
}

func (p *Parser) addError(err error) {
	if p.halted {
		return
	}
	p.Errors = append(p.Errors, err)
	if p.MaxErrors > 0 && len(p.Errors) >= p.MaxErrors {
		p.Errors = append(p.Errors, fmt.Errorf("%w: stopped after %d", ErrTooManyErrors, len(p.Errors)))
		p.halted = true
		p.current = len(p.tokens) - 1
	}
}

// synchronize skips tokens until a likely statement boundary: just after a
// '}' or ';', or just before a statement keyword.  A '}' closing an
// enclosing block is left for that block.  At least one token is consumed
// when the failed declaration made no progress.
func (p *Parser) synchronize(start int) {
	for !p.atEnd() {
		if p.current > start {
			prev := p.previous()
			if prev.Is(Mark, "}") || prev.Is(Mark, ";") {
				return
			}
			if tok := p.PeekToken(); tok.Kind == Keyword && statementKeywords[tok.Text] {
				return
			}
		}
		if p.depth > 0 && p.PeekToken().Is(Mark, "}") {
			return
		}
		p.Advance()
	}
}

// --- Token helpers ---

func (p *Parser) atEnd() bool {
	return p.PeekToken().Kind == EOF
}

func (p *Parser) PeekToken() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	idx := p.current + n
	if idx >= len(p.tokens) {
		idx = len(p.tokens) - 1
	}
	return p.tokens[idx]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) Advance() Token {
	tok := p.PeekToken()
	if tok.Kind != EOF {
		p.current++
	}
	return tok
}

func (p *Parser) check(kind TokenKind, texts ...string) bool {
	tok := p.PeekToken()
	if tok.Kind != kind {
		return false
	}
	if len(texts) == 0 {
		return true
	}
	for _, t := range texts {
		if tok.Text == t {
			return true
		}
	}
	return false
}

// Match consumes the next token if it is one of the given kind/texts.
func (p *Parser) Match(kind TokenKind, texts ...string) bool {
	if p.check(kind, texts...) {
		p.Advance()
		return true
	}
	return false
}

// Expect consumes the next token if it is one of the given kind/texts and
// fails otherwise.
func (p *Parser) Expect(kind TokenKind, texts ...string) (Token, error) {
	if p.check(kind, texts...) {
		return p.Advance(), nil
	}
	var want string
	switch len(texts) {
	case 0:
		want = strings.ToLower(kind.String())
	case 1:
		want = "'" + texts[0] + "'"
	default:
		want = "one of: [" + strings.Join(gfn.Map(texts, func(t string) string { return "'" + t + "'" }), ", ") + "]"
	}
	return Token{}, p.Errorf("expected %s, found %s", want, p.PeekToken())
}

func (p *Parser) Errorf(format string, args ...any) error {
	return p.errorAt(p.PeekToken(), format, args...)
}

func (p *Parser) errorAt(tok Token, format string, args ...any) error {
	return &SyntaxError{Line: tok.Line, Near: tok.String(), Msg: fmt.Sprintf(format, args...)}
}

// --- Declarations and statements ---

// ParseDeclaration parses a function declaration, a variable declaration or
// a statement.  A lone ';' yields a nil statement.
func (p *Parser) ParseDeclaration() (Stmt, error) {
	switch {
	case p.check(Keyword, "wea_flow"):
		return p.ParseFunctionDecl()
	case p.check(Keyword, "wea_unit"):
		return p.ParseVarDecl()
	}
	return p.ParseStmt()
}

func (p *Parser) ParseFunctionDecl() (Stmt, error) {
	kw := p.Advance()
	name, err := p.Expect(Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(Mark, "("); err != nil {
		return nil, err
	}
	params, err := p.parseParamNames()
	if err != nil {
		return nil, err
	}
	body, err := p.ParseBlockStmt()
	if err != nil {
		return nil, err
	}
	return &FunctionDecl{StmtBase: decl.StmtAt(kw.Line), Name: name.Text, Params: params, Body: body}, nil
}

// parseParamNames parses `a, b, c)` after the opening paren has been consumed.
func (p *Parser) parseParamNames() (params []string, err error) {
	if p.Match(Mark, ")") {
		return nil, nil
	}
	for {
		tok, err := p.Expect(Identifier)
		if err != nil {
			return nil, err
		}
		params = append(params, tok.Text)
		if !p.Match(Mark, ",") {
			break
		}
	}
	if _, err := p.Expect(Mark, ")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) ParseVarDecl() (Stmt, error) {
	kw := p.Advance()
	name, err := p.Expect(Identifier)
	if err != nil {
		return nil, err
	}
	out := &VarDeclStmt{StmtBase: decl.StmtAt(kw.Line), Name: name.Text}
	if p.Match(Mark, "=") {
		if out.Init, err = p.ParseExpression(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *Parser) ParseStmt() (Stmt, error) {
	tok := p.PeekToken()
	if tok.Kind == Keyword {
		switch tok.Text {
		case "wea_verify":
			return p.ParseIfStmt()
		case "wea_emit":
			p.Advance()
			value, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			return &EmitStmt{StmtBase: decl.StmtAt(tok.Line), Value: value}, nil
		case "wea_read":
			if !p.peekN(1).Is(Mark, "(") {
				return p.parseReadStmt()
			}
		case "wea_cycle":
			return p.ParseWhileStmt()
		case "wea_eman":
			return p.ParseTryStmt()
		case "foreach":
			return p.ParseForeachStmt()
		case "wea_return":
			return p.ParseReturnStmt()
		case "break":
			p.Advance()
			return &BreakStmt{StmtBase: decl.StmtAt(tok.Line)}, nil
		case "continue":
			p.Advance()
			return &ContinueStmt{StmtBase: decl.StmtAt(tok.Line)}, nil
		}
	}
	if tok.Is(Mark, ";") {
		p.Advance()
		return nil, nil
	}
	if tok.Is(Mark, "{") {
		return p.ParseBlockStmt()
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{StmtBase: decl.StmtAt(tok.Line), Expression: expr}, nil
}

// parseReadStmt desugars `wea_read "prompt"` into `wea_read("prompt")`.  The
// prompt defaults to "" so the call always has one argument.
func (p *Parser) parseReadStmt() (Stmt, error) {
	kw := p.Advance()
	prompt := ""
	if p.check(String) {
		prompt = p.Advance().Text
	}
	call := &CallExpr{
		ExprBase: decl.ExprAt(kw.Line),
		Callee:   &VariableExpr{ExprBase: decl.ExprAt(kw.Line), Name: "wea_read"},
		Args:     []Expr{&LiteralExpr{ExprBase: decl.ExprAt(kw.Line), Value: prompt}},
	}
	return &ExprStmt{StmtBase: decl.StmtAt(kw.Line), Expression: call}, nil
}

func (p *Parser) ParseBlockStmt() (*BlockStmt, error) {
	open, err := p.Expect(Mark, "{")
	if err != nil {
		return nil, err
	}
	p.depth++
	defer func() { p.depth-- }()

	out := &BlockStmt{StmtBase: decl.StmtAt(open.Line)}
	for !p.check(Mark, "}") && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			out.Statements = append(out.Statements, stmt)
		}
	}
	if _, err := p.Expect(Mark, "}"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) ParseIfStmt() (Stmt, error) {
	kw := p.Advance()
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.ParseBlockStmt()
	if err != nil {
		return nil, err
	}
	out := &IfStmt{StmtBase: decl.StmtAt(kw.Line), Condition: cond, Then: then}
	if p.Match(Keyword, "wea_else") {
		if p.check(Keyword, "wea_verify") {
			out.Else, err = p.ParseIfStmt()
		} else {
			out.Else, err = p.ParseBlockStmt()
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *Parser) ParseWhileStmt() (Stmt, error) {
	kw := p.Advance()
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.ParseBlockStmt()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{StmtBase: decl.StmtAt(kw.Line), Condition: cond, Body: body}, nil
}

func (p *Parser) ParseTryStmt() (Stmt, error) {
	kw := p.Advance()
	try, err := p.ParseBlockStmt()
	if err != nil {
		return nil, err
	}
	out := &TryStmt{StmtBase: decl.StmtAt(kw.Line), Try: try}
	if p.Match(Keyword, "wea_fail") {
		if out.Catch, err = p.ParseBlockStmt(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParseForeachStmt parses `foreach (x in expr) { ... }`.  The parens are optional.
func (p *Parser) ParseForeachStmt() (Stmt, error) {
	kw := p.Advance()
	paren := p.Match(Mark, "(")
	name, err := p.Expect(Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(Keyword, "in"); err != nil {
		return nil, err
	}
	iterable, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if paren {
		if _, err := p.Expect(Mark, ")"); err != nil {
			return nil, err
		}
	}
	body, err := p.ParseBlockStmt()
	if err != nil {
		return nil, err
	}
	return &ForeachStmt{StmtBase: decl.StmtAt(kw.Line), VarName: name.Text, Iterable: iterable, Body: body}, nil
}

func (p *Parser) ParseReturnStmt() (Stmt, error) {
	kw := p.Advance()
	out := &ReturnStmt{StmtBase: decl.StmtAt(kw.Line)}
	next := p.PeekToken()
	if next.Kind == EOF || next.Is(Mark, "}") || next.Is(Mark, ";") ||
		(next.Kind == Keyword && statementKeywords[next.Text] && next.Text != "wea_read") {
		return out, nil
	}
	var err error
	if out.Value, err = p.ParseExpression(); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Expressions ---

// ParseExpression is the entry point for parsing any expression.  Lambdas are
// recognised by lookahead before falling into assignment.
func (p *Parser) ParseExpression() (Expr, error) {
	if p.isLambdaStart() {
		return p.ParseLambda()
	}
	return p.parseAssignment()
}

// isLambdaStart reports whether the upcoming tokens are `x =>` or a
// parenthesized identifier list whose closing paren is followed by `=>`.
func (p *Parser) isLambdaStart() bool {
	tok := p.PeekToken()
	if tok.Kind == Identifier {
		return p.peekN(1).Is(Mark, "=>")
	}
	if !tok.Is(Mark, "(") {
		return false
	}
	i := 1
	if p.peekN(i).Is(Mark, ")") {
		return p.peekN(i + 1).Is(Mark, "=>")
	}
	for {
		if p.peekN(i).Kind != Identifier {
			return false
		}
		i++
		next := p.peekN(i)
		if next.Is(Mark, ")") {
			return p.peekN(i + 1).Is(Mark, "=>")
		}
		if !next.Is(Mark, ",") {
			return false
		}
		i++
	}
}

func (p *Parser) ParseLambda() (Expr, error) {
	start := p.PeekToken()
	out := &LambdaExpr{ExprBase: decl.ExprAt(start.Line)}
	if start.Kind == Identifier {
		out.Params = []string{p.Advance().Text}
	} else {
		p.Advance()
		params, err := p.parseParamNames()
		if err != nil {
			return nil, err
		}
		out.Params = params
	}
	if _, err := p.Expect(Mark, "=>"); err != nil {
		return nil, err
	}
	var err error
	if p.check(Mark, "{") {
		out.Body, err = p.ParseBlockStmt()
	} else {
		out.Expr, err = p.ParseExpression()
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) parseAssignment() (Expr, error) {
	expr, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	if !p.check(Mark, "=") {
		return expr, nil
	}
	eq := p.Advance()
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	base := decl.ExprAt(expr.Pos())
	switch target := expr.(type) {
	case *VariableExpr:
		return &AssignExpr{ExprBase: base, Name: target.Name, Value: value}, nil
	case *GetExpr:
		return &SetExpr{ExprBase: base, Object: target.Object, Name: target.Name, Value: value}, nil
	case *IndexExpr:
		if target.End == nil {
			return &IndexSetExpr{ExprBase: base, Object: target.Object, Index: target.Start, Value: value}, nil
		}
	}
	return nil, p.errorAt(eq, "invalid assignment target %s", expr)
}

// parsePipeline desugars `a |> f(b)` into `f(a, b)` as it goes, so chains
// left associate.
func (p *Parser) parsePipeline() (Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.check(Mark, "|>") {
		op := p.Advance()
		right, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		call, ok := right.(*CallExpr)
		if !ok {
			return nil, p.errorAt(op, "right side of '|>' must be a call, found %s", right)
		}
		args := make([]Expr, 0, len(call.Args)+1)
		args = append(args, left)
		args = append(args, call.Args...)
		left = &CallExpr{ExprBase: decl.ExprAt(call.Pos()), Callee: call.Callee, Args: args}
	}
	return left, nil
}

func (p *Parser) parseOr() (Expr, error) {
	return p.parseBinaryExpr(p.parseAnd, true, "||")
}

func (p *Parser) parseAnd() (Expr, error) {
	return p.parseBinaryExpr(p.parseEquality, true, "&&")
}

func (p *Parser) parseEquality() (Expr, error) {
	return p.parseBinaryExpr(p.parseComparison, false, "==", "!=")
}

func (p *Parser) parseComparison() (Expr, error) {
	return p.parseBinaryExpr(p.parseTerm, false, ">", ">=", "<", "<=")
}

func (p *Parser) parseTerm() (Expr, error) {
	return p.parseBinaryExpr(p.parseFactor, false, "+", "-")
}

func (p *Parser) parseFactor() (Expr, error) {
	return p.parseBinaryExpr(p.ParseUnaryExpr, false, "*", "/", "%")
}

// Generic helper for parsing left-associative binary expressions for a given precedence level.
func (p *Parser) parseBinaryExpr(
	parseHigherPrecedenceOperand func() (Expr, error),
	logical bool,
	operators ...string) (Expr, error) {

	left, err := parseHigherPrecedenceOperand()
	if err != nil {
		return nil, err
	}
	for p.check(Mark, operators...) {
		op := p.Advance()
		right, err := parseHigherPrecedenceOperand()
		if err != nil {
			return nil, err
		}
		if logical {
			left = &LogicalExpr{ExprBase: decl.ExprAt(left.Pos()), Left: left, Operator: op.Text, Right: right}
		} else {
			left = &BinaryExpr{ExprBase: decl.ExprAt(left.Pos()), Left: left, Operator: op.Text, Right: right}
		}
	}
	return left, nil
}

// UnaryExpr: ("!" | "-") UnaryExpr | CallExpr
func (p *Parser) ParseUnaryExpr() (Expr, error) {
	if p.check(Mark, "!", "-") {
		op := p.Advance()
		operand, err := p.ParseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{ExprBase: decl.ExprAt(op.Line), Operator: op.Text, Right: operand}, nil
	}
	return p.parseCall()
}

// parseCall parses a primary followed by any number of calls, field
// accesses and index/slice suffixes.
func (p *Parser) parseCall() (Expr, error) {
	expr, err := p.ParsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(Mark, "("):
			open := p.Advance()
			args, err := p.ParseArgList(")")
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{ExprBase: decl.ExprAt(open.Line), Callee: expr, Args: args}
		case p.check(Mark, "."):
			p.Advance()
			name, err := p.Expect(Identifier)
			if err != nil {
				return nil, err
			}
			expr = &GetExpr{ExprBase: decl.ExprAt(name.Line), Object: expr, Name: name.Text}
		case p.check(Mark, "["):
			open := p.Advance()
			start, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			out := &IndexExpr{ExprBase: decl.ExprAt(open.Line), Object: expr, Start: start}
			if p.Match(Mark, ":") {
				if out.End, err = p.ParseExpression(); err != nil {
					return nil, err
				}
			}
			if _, err := p.Expect(Mark, "]"); err != nil {
				return nil, err
			}
			expr = out
		default:
			return expr, nil
		}
	}
}

// ParseArgList parses comma separated expressions up to and including the
// closing mark.  A trailing comma is allowed.
func (p *Parser) ParseArgList(closing string) (args []Expr, err error) {
	for !p.check(Mark, closing) {
		arg, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.Match(Mark, ",") {
			break
		}
	}
	if _, err := p.Expect(Mark, closing); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) ParsePrimaryExpr() (Expr, error) {
	tok := p.PeekToken()
	base := decl.ExprAt(tok.Line)
	switch tok.Kind {
	case Number:
		p.Advance()
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, p.errorAt(tok, "invalid number %s", tok.Text)
		}
		return &LiteralExpr{ExprBase: base, Value: f}, nil
	case String:
		p.Advance()
		return &LiteralExpr{ExprBase: base, Value: tok.Text}, nil
	case Identifier:
		p.Advance()
		return &VariableExpr{ExprBase: base, Name: tok.Text}, nil
	case Keyword:
		switch tok.Text {
		case "dogru":
			p.Advance()
			return &LiteralExpr{ExprBase: base, Value: true}, nil
		case "yanlis":
			p.Advance()
			return &LiteralExpr{ExprBase: base, Value: false}, nil
		case "bos":
			p.Advance()
			return &LiteralExpr{ExprBase: base, Value: nil}, nil
		case "wea_read":
			p.Advance()
			return &VariableExpr{ExprBase: base, Name: tok.Text}, nil
		case "is_key":
			return p.parseIsKey()
		}
	case Mark:
		switch tok.Text {
		case "(":
			p.Advance()
			inner, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.Expect(Mark, ")"); err != nil {
				return nil, err
			}
			return &GroupingExpr{ExprBase: base, Inner: inner}, nil
		case "[":
			p.Advance()
			elems, err := p.ParseArgList("]")
			if err != nil {
				return nil, err
			}
			return &ListExpr{ExprBase: base, Elements: elems}, nil
		case "{":
			return p.parseDict()
		}
	}
	return nil, p.Errorf("expected expression, found %s", tok)
}

func (p *Parser) parseIsKey() (Expr, error) {
	kw := p.Advance()
	if _, err := p.Expect(Mark, "("); err != nil {
		return nil, err
	}
	args, err := p.ParseArgList(")")
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, p.errorAt(kw, "is_key expects 2 arguments, got %d", len(args))
	}
	return &IsKeyExpr{ExprBase: decl.ExprAt(kw.Line), Object: args[0], Key: args[1]}, nil
}

func (p *Parser) parseDict() (Expr, error) {
	open := p.Advance()
	out := &DictExpr{ExprBase: decl.ExprAt(open.Line)}
	for !p.check(Mark, "}") {
		key, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.Expect(Mark, ":"); err != nil {
			return nil, err
		}
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		out.Keys = append(out.Keys, key)
		out.Values = append(out.Values, value)
		if !p.Match(Mark, ",") {
			break
		}
	}
	if _, err := p.Expect(Mark, "}"); err != nil {
		return nil, err
	}
	return out, nil
}
