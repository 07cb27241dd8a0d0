package odata

// Domain groups built-in members by the renderer that translates them.
type Domain string

const (
	StringDomain Domain = "string"
	DateDomain   Domain = "date"
	MathDomain   Domain = "math"
)

// MappedMemberInfo describes a built-in function or property.
type MappedMemberInfo struct {
	Domain Domain
	Name   string
	// IsStatic functions take no instance; every argument stays in Args.
	IsStatic bool
	// IsMethod is false for properties such as length, which parse as Member.
	IsMethod bool
	MinArgs  int
	MaxArgs  int
	// ArgRemapper reorders the parsed arguments before the instance is split off.
	ArgRemapper func(args []Expression) []Expression
}

// swapFirstTwo puts the searched string first so substringof(sub, s) binds
// like s.contains(sub).
func swapFirstTwo(args []Expression) []Expression {
	out := make([]Expression, len(args))
	copy(out, args)
	out[0], out[1] = out[1], out[0]
	return out
}

func method(domain Domain, name string, args int) *MappedMemberInfo {
	return &MappedMemberInfo{Domain: domain, Name: name, IsMethod: true, MinArgs: args, MaxArgs: args}
}

var stringFunctions = map[string]*MappedMemberInfo{
	"startswith": method(StringDomain, "startswith", 2),
	"endswith":   method(StringDomain, "endswith", 2),
	"length":     {Domain: StringDomain, Name: "length", MinArgs: 1, MaxArgs: 1},
	"toupper":    method(StringDomain, "toupper", 1),
	"tolower":    method(StringDomain, "tolower", 1),
	"trim":       method(StringDomain, "trim", 1),
	"substringof": {
		Domain: StringDomain, Name: "substringof", IsMethod: true, MinArgs: 2, MaxArgs: 2,
		ArgRemapper: swapFirstTwo,
	},
	"indexof":   method(StringDomain, "indexof", 2),
	"replace":   method(StringDomain, "replace", 3),
	"substring": {Domain: StringDomain, Name: "substring", IsMethod: true, MinArgs: 2, MaxArgs: 3},
	"concat":    {Domain: StringDomain, Name: "concat", IsStatic: true, IsMethod: true, MinArgs: 2, MaxArgs: 2},
}

var dateFunctions = map[string]*MappedMemberInfo{
	"day":    method(DateDomain, "day", 1),
	"month":  method(DateDomain, "month", 1),
	"year":   method(DateDomain, "year", 1),
	"hour":   method(DateDomain, "hour", 1),
	"minute": method(DateDomain, "minute", 1),
	"second": method(DateDomain, "second", 1),
}

var mathFunctions = map[string]*MappedMemberInfo{
	"floor":   method(MathDomain, "floor", 1),
	"ceiling": method(MathDomain, "ceiling", 1),
	"round":   method(MathDomain, "round", 1),
}

// LookupFunction resolves a built-in by name, searching the string, date and
// math domains in that order.
func LookupFunction(name string) (*MappedMemberInfo, bool) {
	for _, table := range []map[string]*MappedMemberInfo{stringFunctions, dateFunctions, mathFunctions} {
		if info, ok := table[name]; ok {
			return info, true
		}
	}
	return nil, false
}

// IsBooleanFunction reports whether a built-in call yields a SQL predicate.
func (m *MappedMemberInfo) IsBooleanFunction() bool {
	switch m.Name {
	case "startswith", "endswith", "substringof":
		return true
	}
	return false
}
