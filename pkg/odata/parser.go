package odata

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const maxReplacementLength = 100

// typeKeywords introduce type construction literals such as
// datetime'2001-04-01T00:00:00Z'.
var typeKeywords = map[string]func(string) (time.Time, error){
	"datetime":       ParseISODate,
	"datetimeoffset": ParseDateTimeOffset,
}

type parser struct {
	lexer *lexer
	pos   int    // position of last token (tok)
	tok   Token  // last lexed token
	val   string // string value of last token (or "")

	// it is the root every bare member access resolves against.
	it *Parameter
	// replaceDepth counts the replace calls currently being parsed.
	replaceDepth int
}

// Parse compiles a $filter expression into an expression tree.
//
// Like the rest of the recursive descent, errors are raised with panic and
// recovered here. Syntax, arity and type construction errors are returned;
// any other panic is a bug and is re-raised.
func Parse(src string) (expr Expression, err error) {
	defer func() {
		if err = asParseError(recover()); err != nil {
			expr = nil
		}
	}()

	p := newParser(src)
	expr = p.expression()
	p.expect(end, "Syntax error")

	return expr, nil
}

// ParseOrdering compiles an $orderby list: comma separated expressions,
// each optionally followed by asc or desc.
func ParseOrdering(src string) (orderings []OrderBy, err error) {
	defer func() {
		if err = asParseError(recover()); err != nil {
			orderings = nil
		}
	}()

	p := newParser(src)
	for {
		ordering := OrderBy{Selector: p.expression(), Ascending: true}
		switch {
		case p.identifierIs("asc"):
			p.next()
		case p.identifierIs("desc"):
			p.next()
			ordering.Ascending = false
		}
		orderings = append(orderings, ordering)

		if !p.matches(comma) {
			break
		}
		p.next()
	}
	p.expect(end, "Syntax error")

	return orderings, nil
}

// asParseError converts a recovered parse failure back into an error.
func asParseError(r any) error {
	switch e := r.(type) {
	case nil:
		return nil
	case ParseError, ArgumentCountError, TypeConstructionError:
		return e.(error)
	default:
		panic(r)
	}
}

func newParser(src string) *parser {
	p := &parser{lexer: newLexer(src), it: &Parameter{}}
	p.next()

	return p
}

// expression parses a logical or.
//
// and ( "or" and )*
func (p *parser) expression() Expression {
	left := p.logicalAnd()
	for p.matches(or) {
		p.next()
		left = &Binary{Left: left, Right: p.logicalAnd(), Op: Or}
	}
	return left
}

// logicalAnd parses comparison ( "and" comparison )*
func (p *parser) logicalAnd() Expression {
	left := p.comparison()
	for p.matches(and) {
		p.next()
		left = &Binary{Left: left, Right: p.comparison(), Op: And}
	}
	return left
}

// comparison parses additive ( (eq|ne|gt|ge|lt|le) additive )*
func (p *parser) comparison() Expression {
	return p.binaryChain(comparisonOps, p.additive)
}

// additive parses multiplicative ( (add|sub) multiplicative )*
func (p *parser) additive() Expression {
	return p.binaryChain(additiveOps, p.multiplicative)
}

// multiplicative parses unary ( (mul|div|mod) unary )*
func (p *parser) multiplicative() Expression {
	return p.binaryChain(multiplicativeOps, p.unary)
}

func (p *parser) binaryChain(ops map[Token]BinaryOperator, operand func() Expression) Expression {
	left := operand()
	for {
		op, ok := ops[p.tok]
		if !ok {
			return left
		}
		p.next()
		left = &Binary{Left: left, Right: operand(), Op: op}
	}
}

// unary parses ( "-" | "not" ) unary | primary. A minus directly in front of
// a numeric literal becomes part of the literal.
func (p *parser) unary() Expression {
	if !p.matches(minus, not) {
		return p.primary()
	}

	op, opPos := p.tok, p.pos
	p.next()

	if op == minus && p.matches(integerLit, realLit) {
		p.val = "-" + p.val
		p.pos = opPos
		return p.primary()
	}

	operand := p.unary()
	if op == minus {
		return &Unary{Operand: operand, Op: Negate}
	}
	return &Unary{Operand: operand, Op: Not}
}

// primary parses primaryStart ( "/" memberAccess )*
func (p *parser) primary() Expression {
	expr := p.primaryStart()
	for p.matches(dot) {
		p.next()
		expr = p.memberAccess(expr)
	}
	return expr
}

func (p *parser) primaryStart() Expression {
	switch p.tok {
	case identifier:
		return p.identifier()
	case stringLit:
		return p.stringLiteral()
	case integerLit:
		return p.integerLiteral()
	case realLit:
		return p.realLiteral()
	case openParen:
		p.next()
		expr := p.expression()
		p.expect(closeParen, "')' or operator expected")
		p.next()
		return expr
	default:
		panic(p.errorf("Expression expected"))
	}
}

func (p *parser) identifier() Expression {
	switch p.val {
	case "true":
		p.next()
		return &Constant{Value: true}
	case "false":
		p.next()
		return &Constant{Value: false}
	case "null":
		p.next()
		return &Constant{Value: nil}
	}

	// only a directly following quote makes datetime a type keyword
	if parse, ok := typeKeywords[p.val]; ok && p.lexer.peek() == '\'' {
		return p.typeConstruction(p.val, parse)
	}

	return p.memberAccess(p.it)
}

func (p *parser) typeConstruction(typeName string, parse func(string) (time.Time, error)) Expression {
	p.next()
	errorPos := p.pos

	literal := p.stringLiteral().(*Constant).Value.(string)
	value, err := parse(literal)
	if err != nil {
		panic(TypeConstructionError{Type: typeName, Position: errorPos, Err: err})
	}

	return &Constant{Value: value}
}

func (p *parser) memberAccess(instance Expression) Expression {
	errorPos := p.pos
	p.expect(identifier, "Identifier expected")
	name := p.val
	p.next()

	if !p.matches(openParen) {
		return &Member{Instance: instance, Name: name}
	}

	info, ok := LookupFunction(name)
	if !ok {
		panic(ParseError{Position: errorPos, Message: fmt.Sprintf("Unknown identifier '%s'", name)})
	}

	return p.mappedFunction(info, errorPos)
}

func (p *parser) mappedFunction(info *MappedMemberInfo, errorPos int) Expression {
	if info.Name == "replace" {
		if p.replaceDepth > 0 {
			panic(ParseError{Position: errorPos, Message: "Calls to 'replace' cannot be nested."})
		}
		p.replaceDepth++
		defer func() { p.replaceDepth-- }()
	}

	args := p.argumentList()

	if len(args) < info.MinArgs || len(args) > info.MaxArgs {
		panic(newArgumentCountError(info))
	}

	if info.Name == "replace" {
		if s, ok := stringConstant(args[2]); !ok || utf8.RuneCountInString(s) >= maxReplacementLength {
			panic(p.errorf("The third parameter to 'replace' must be a string constant less than %d in length.",
				maxReplacementLength))
		}
	}

	if info.ArgRemapper != nil {
		args = info.ArgRemapper(args)
	}

	var instance Expression
	if !info.IsStatic {
		if len(args) == 0 {
			panic(ParseError{
				Position: errorPos,
				Message:  fmt.Sprintf("No applicable method '%s' exists in type '%s'", info.Name, info.Domain),
			})
		}
		instance, args = args[0], args[1:]
	}

	if !info.IsMethod {
		return &Member{Instance: instance, Mapped: info}
	}
	return &FunctionCall{Instance: instance, Member: info, Args: args}
}

// argumentList parses "(" ( expression ( "," expression )* )? ")"
func (p *parser) argumentList() []Expression {
	p.expect(openParen, "'(' expected")
	p.next()

	var args []Expression
	if !p.matches(closeParen) {
		for {
			args = append(args, p.expression())
			if !p.matches(comma) {
				break
			}
			p.next()
		}
	}

	p.expect(closeParen, "')' or ',' expected")
	p.next()

	return args
}

// stringLiteral strips the quotes and collapses doubled quotes.
func (p *parser) stringLiteral() Expression {
	p.expect(stringLit, "Syntax error")
	s := strings.ReplaceAll(p.val[1:len(p.val)-1], "''", "'")
	p.next()

	return &Constant{Value: s}
}

func (p *parser) integerLiteral() Expression {
	value, err := strconv.ParseInt(p.val, 10, 64)
	if err != nil {
		panic(p.errorf("Invalid integer literal '%s'", p.val))
	}
	p.next()

	return &Constant{Value: value}
}

func (p *parser) realLiteral() Expression {
	value, err := strconv.ParseFloat(p.val, 64)
	if err != nil {
		panic(p.errorf("Invalid real literal '%s'", p.val))
	}
	p.next()

	return &FloatConstant{Value: value}
}

// next parses the next token into p.tok.
func (p *parser) next() {
	p.pos, p.tok, p.val = p.lexer.Scan()
	if p.tok == illegal {
		panic(p.errorf("%s", p.val))
	}
}

// matches returns true if current token matches one of the given tokens.
func (p *parser) matches(tokens ...Token) bool {
	return slices.Contains(tokens, p.tok)
}

func (p *parser) identifierIs(name string) bool {
	return p.tok == identifier && p.val == name
}

// expect panics with message if current token is not the expected token.
func (p *parser) expect(tok Token, message string) {
	if p.tok != tok {
		panic(p.errorf("%s", message))
	}
}

// errorf formats an error with the current position.
func (p *parser) errorf(format string, args ...any) ParseError {
	return ParseError{Position: p.pos, Message: fmt.Sprintf(format, args...)}
}
