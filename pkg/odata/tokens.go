package odata

type Token int

const (
	illegal Token = iota
	end
	openParen
	closeParen
	comma
	minus
	dot
	stringLit
	identifier
	integerLit
	realLit

	// reclassified identifiers
	or
	and
	add
	sub
	div
	mul
	mod
	not
	eq
	ne
	lt
	le
	gt
	ge
)

var tokenNames = map[Token]string{
	illegal:    "illegal",
	end:        "end",
	openParen:  "openParen",
	closeParen: "closeParen",
	comma:      "comma",
	minus:      "minus",
	dot:        "dot",
	stringLit:  "stringLit",
	identifier: "identifier",
	integerLit: "integerLit",
	realLit:    "realLit",
	or:         "or",
	and:        "and",
	add:        "add",
	sub:        "sub",
	div:        "div",
	mul:        "mul",
	mod:        "mod",
	not:        "not",
	eq:         "eq",
	ne:         "ne",
	lt:         "lt",
	le:         "le",
	gt:         "gt",
	ge:         "ge",
}

func (t Token) String() string {
	return tokenNames[t]
}

// reserved maps operator words to their token. Matching is case-sensitive.
var reserved = map[string]Token{
	"or":  or,
	"and": and,
	"add": add,
	"sub": sub,
	"div": div,
	"mul": mul,
	"mod": mod,
	"not": not,
	"eq":  eq,
	"ne":  ne,
	"lt":  lt,
	"le":  le,
	"gt":  gt,
	"ge":  ge,
}

var comparisonOps = map[Token]BinaryOperator{
	eq: Equal,
	ne: NotEqual,
	lt: LessThan,
	le: LessThanOrEqual,
	gt: GreaterThan,
	ge: GreaterThanOrEqual,
}

var additiveOps = map[Token]BinaryOperator{
	add: Add,
	sub: Subtract,
}

var multiplicativeOps = map[Token]BinaryOperator{
	mul: Multiply,
	div: Divide,
	mod: Modulo,
}
