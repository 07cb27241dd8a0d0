package odata_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/odata-sql/pkg/odata"
)

type scanned = odata.Scanned

var scanAll = odata.ScanAll

var _ = Describe("Lexer", func() {
	It("scans operators, punctuation and literals", func() {
		Expect(scanAll("(price add 1) ge -2.5, a/b")).To(Equal([]scanned{
			{Pos: 0, Tok: "openParen", Val: "("},
			{Pos: 1, Tok: "identifier", Val: "price"},
			{Pos: 7, Tok: "add", Val: "add"},
			{Pos: 11, Tok: "integerLit", Val: "1"},
			{Pos: 12, Tok: "closeParen", Val: ")"},
			{Pos: 14, Tok: "ge", Val: "ge"},
			{Pos: 17, Tok: "minus", Val: "-"},
			{Pos: 18, Tok: "realLit", Val: "2.5"},
			{Pos: 21, Tok: "comma", Val: ","},
			{Pos: 23, Tok: "identifier", Val: "a"},
			{Pos: 24, Tok: "dot", Val: "/"},
			{Pos: 25, Tok: "identifier", Val: "b"},
			{Pos: 26, Tok: "end", Val: ""},
		}))
	})

	It("reclassifies operator words case-sensitively", func() {
		Expect(scanAll("eq EQ Eq")).To(Equal([]scanned{
			{Pos: 0, Tok: "eq", Val: "eq"},
			{Pos: 3, Tok: "identifier", Val: "EQ"},
			{Pos: 6, Tok: "identifier", Val: "Eq"},
			{Pos: 8, Tok: "end", Val: ""},
		}))
	})

	It("accepts @, _ and - in identifiers", func() {
		Expect(scanAll("@odata _x item-count")).To(Equal([]scanned{
			{Pos: 0, Tok: "identifier", Val: "@odata"},
			{Pos: 7, Tok: "identifier", Val: "_x"},
			{Pos: 10, Tok: "identifier", Val: "item-count"},
			{Pos: 20, Tok: "end", Val: ""},
		}))
	})

	// Given an identifier made only of its start character
	// When we scan it
	// Then the lexer should advance past it
	It("advances past a lone @", func() {
		Expect(scanAll("@ eq 1")).To(Equal([]scanned{
			{Pos: 0, Tok: "identifier", Val: "@"},
			{Pos: 2, Tok: "eq", Val: "eq"},
			{Pos: 5, Tok: "integerLit", Val: "1"},
			{Pos: 6, Tok: "end", Val: ""},
		}))
	})

	It("does not accept @ after the first character", func() {
		Expect(scanAll("a@b")).To(Equal([]scanned{
			{Pos: 0, Tok: "identifier", Val: "a"},
			{Pos: 1, Tok: "identifier", Val: "@b"},
			{Pos: 3, Tok: "end", Val: ""},
		}))
	})

	Context("string literals", func() {
		It("keeps the quotes and escaped quotes in the token text", func() {
			Expect(scanAll("'it''s'")[0]).To(Equal(scanned{Pos: 0, Tok: "stringLit", Val: "'it''s'"}))
		})

		It("treats backslash as an ordinary character", func() {
			Expect(scanAll(`'a\' eq 1`)[0]).To(Equal(scanned{Pos: 0, Tok: "stringLit", Val: `'a\'`}))
		})

		It("reports an unterminated literal at its opening quote", func() {
			toks := scanAll("name eq 'abc")
			Expect(toks[len(toks)-1]).To(Equal(scanned{Pos: 8, Tok: "illegal", Val: "Unterminated string literal"}))
		})
	})

	Context("numeric literals", func() {
		type testCase struct {
			input string
			tok   string
			val   string
		}

		tests := []testCase{
			{input: "1234", tok: "integerLit", val: "1234"},
			{input: "1234L", tok: "integerLit", val: "1234"},
			{input: "1234l", tok: "integerLit", val: "1234"},
			{input: "1234M", tok: "realLit", val: "1234"},
			{input: "1234f", tok: "realLit", val: "1234"},
			{input: "1234D", tok: "realLit", val: "1234"},
			{input: "12.5", tok: "realLit", val: "12.5"},
			{input: "1e10", tok: "realLit", val: "1e10"},
			{input: "1.5E-3", tok: "realLit", val: "1.5E-3"},
		}

		for _, test := range tests {
			It("scans "+test.input, func() {
				toks := scanAll(test.input)
				Expect(toks).To(HaveLen(2))
				Expect(toks[0]).To(Equal(scanned{Pos: 0, Tok: test.tok, Val: test.val}))
			})
		}

		It("requires a digit after the decimal point", func() {
			Expect(scanAll("1.x")[0]).To(Equal(scanned{Pos: 2, Tok: "illegal", Val: "Digit expected"}))
		})

		It("requires a digit in the exponent", func() {
			Expect(scanAll("1e+")[0]).To(Equal(scanned{Pos: 3, Tok: "illegal", Val: "Digit expected"}))
		})
	})

	It("rejects unknown characters", func() {
		toks := scanAll(`user eq "mathewc"`)
		Expect(toks[len(toks)-1]).To(Equal(scanned{Pos: 8, Tok: "illegal", Val: `Syntax error '"'`}))
	})
})
