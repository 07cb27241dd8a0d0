package sqlformat

import (
	"github.com/kubev2v/odata-sql/pkg/odata"
)

// wrapped functions render as prefix + instance + suffix.
var wrapped = map[string][2]string{
	"tolower": {"LOWER(", ")"},
	"toupper": {"UPPER(", ")"},
	"trim":    {"LTRIM(RTRIM(", "))"},
	// LEN ignores trailing spaces
	"length": {"(LEN(", " + 'X') - 1)"},

	"day":    {"DAY(", ")"},
	"month":  {"MONTH(", ")"},
	"year":   {"YEAR(", ")"},
	"hour":   {"DATEPART(HOUR, ", ")"},
	"minute": {"DATEPART(MINUTE, ", ")"},
	"second": {"DATEPART(SECOND, ", ")"},

	"floor":   {"FLOOR(", ")"},
	"ceiling": {"CEILING(", ")"},
	// rounds half away from zero
	"round": {"ROUND(", ", 0)"},
}

func (f *Formatter) formatMappedMember(instance odata.Expression, info *odata.MappedMemberInfo, args []odata.Expression) {
	if w, ok := wrapped[info.Name]; ok {
		f.write(w[0])
		f.visit(instance)
		f.write(w[1])
		return
	}

	if info.Domain == odata.StringDomain {
		f.formatStringFunction(instance, info.Name, args)
	}
}

func (f *Formatter) formatStringFunction(instance odata.Expression, name string, args []odata.Expression) {
	switch name {
	case "substringof":
		f.like(instance, "('%' + ", args[0], " + '%')")
	case "startswith":
		f.like(instance, "(", args[0], " + '%')")
	case "endswith":
		f.like(instance, "('%' + ", args[0], ")")
	case "concat":
		f.dialect.concat(f, args[0], args[1])
	case "indexof":
		f.dialect.indexOf(f, instance, args[0])
	case "replace":
		f.write("REPLACE(")
		f.visit(instance)
		f.write(", ")
		f.visit(args[0])
		f.write(", ")
		f.visit(args[1])
		f.write(")")
	case "substring":
		f.write(f.dialect.substringFunction() + "(")
		f.visit(instance)
		f.write(", ")
		// OData offsets are 0-based
		f.visit(args[0])
		f.write(" + 1, ")
		if len(args) == 1 {
			f.write("LEN(")
			f.visit(instance)
			f.write(")")
		} else {
			f.visit(args[1])
		}
		f.write(")")
	}
}

// like writes (instance LIKE <open> pattern <closing>).
func (f *Formatter) like(instance odata.Expression, open string, pattern odata.Expression, closing string) {
	f.write("(")
	f.visit(instance)
	f.write(" LIKE ")
	f.write(open)
	f.visit(pattern)
	f.write(closing)
	f.write(")")
}
