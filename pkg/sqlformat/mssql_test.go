package sqlformat

import (
	srvErrors "github.com/kubev2v/odata-sql/pkg/errors"
	"github.com/kubev2v/odata-sql/pkg/odata"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("mssql", func() {
	books := TableConfig{Flavor: MSSQL}

	Context("filters", func() {
		type testCase struct {
			filter string
			output string
		}

		It("renders expressions", func() {
			tests := []testCase{
				{filter: "type eq 'fiction' and price lt 10", output: "SELECT * FROM [dbo].[books] WHERE (([type] = @p1) AND ([price] < @p2))"},
				{filter: "price le 10 or price ge 20", output: "SELECT * FROM [dbo].[books] WHERE (([price] <= @p1) OR ([price] >= @p2))"},
				{filter: "price ne 5", output: "SELECT * FROM [dbo].[books] WHERE ([price] != @p1)"},
				{filter: "price add 1 gt 2", output: "SELECT * FROM [dbo].[books] WHERE (([price] + @p1) > @p2)"},
				{filter: "price sub 1 mul 2 div 3 eq 4", output: "SELECT * FROM [dbo].[books] WHERE (([price] - ((@p1 * @p2) / @p3)) = @p4)"},
				{filter: "price mod 2 eq 0", output: "SELECT * FROM [dbo].[books] WHERE ((CONVERT(numeric, [price]) % @p1) = @p2)"},
				{filter: "-price lt 3", output: "SELECT * FROM [dbo].[books] WHERE (-([price]) < @p1)"},
				{filter: "title eq null", output: "SELECT * FROM [dbo].[books] WHERE ([title] IS NULL)"},
				{filter: "title ne null", output: "SELECT * FROM [dbo].[books] WHERE ([title] IS NOT NULL)"},
				{filter: "inStock", output: "SELECT * FROM [dbo].[books] WHERE ([inStock] = @p1)"},
				{filter: "not inStock", output: "SELECT * FROM [dbo].[books] WHERE NOT ([inStock] = @p1)"},
				{filter: "startswith(title, 'a') eq true", output: "SELECT * FROM [dbo].[books] WHERE ([title] LIKE (@p1 + '%'))"},
				{filter: "startswith(title, 'a') eq false", output: "SELECT * FROM [dbo].[books] WHERE NOT ([title] LIKE (@p1 + '%'))"},
				{filter: "endswith(title, 'z')", output: "SELECT * FROM [dbo].[books] WHERE ([title] LIKE ('%' + @p1))"},
				{filter: "substringof('mid', title)", output: "SELECT * FROM [dbo].[books] WHERE ([title] LIKE ('%' + @p1 + '%'))"},
				{filter: "tolower(title) eq 'x'", output: "SELECT * FROM [dbo].[books] WHERE (LOWER([title]) = @p1)"},
				{filter: "toupper(title) eq 'X'", output: "SELECT * FROM [dbo].[books] WHERE (UPPER([title]) = @p1)"},
				{filter: "trim(title) eq 'x'", output: "SELECT * FROM [dbo].[books] WHERE (LTRIM(RTRIM([title])) = @p1)"},
				{filter: "length(title) gt 3", output: "SELECT * FROM [dbo].[books] WHERE ((LEN([title] + 'X') - 1) > @p1)"},
				{filter: "concat(title, 'x') eq 'y'", output: "SELECT * FROM [dbo].[books] WHERE ((CONVERT(NVARCHAR(MAX), [title]) + @p1) = @p2)"},
				{filter: "concat('x', title) eq 'y'", output: "SELECT * FROM [dbo].[books] WHERE ((@p1 + CONVERT(NVARCHAR(MAX), [title])) = @p2)"},
				{filter: "indexof(title, 'x') eq 1", output: "SELECT * FROM [dbo].[books] WHERE ((PATINDEX('%' + @p1 + '%', [title]) - 1) = @p2)"},
				{filter: "substring(title, 1, 2) eq 'ab'", output: "SELECT * FROM [dbo].[books] WHERE (SUBSTRING([title], @p1 + 1, @p2) = @p3)"},
				{filter: "substring(title, 1) eq 'ab'", output: "SELECT * FROM [dbo].[books] WHERE (SUBSTRING([title], @p1 + 1, LEN([title])) = @p2)"},
				{filter: "replace(title, 'a', 'b') eq 'c'", output: "SELECT * FROM [dbo].[books] WHERE (REPLACE([title], @p1, @p2) = @p3)"},
				{filter: "year(published) eq 2000", output: "SELECT * FROM [dbo].[books] WHERE (YEAR([published]) = @p1)"},
				{filter: "hour(published) eq 1", output: "SELECT * FROM [dbo].[books] WHERE (DATEPART(HOUR, [published]) = @p1)"},
				{filter: "round(price) eq 1", output: "SELECT * FROM [dbo].[books] WHERE (ROUND([price], 0) = @p1)"},
				{filter: "floor(price) eq ceiling(price)", output: "SELECT * FROM [dbo].[books] WHERE (FLOOR([price]) = CEILING([price]))"},
			}

			for _, tc := range tests {
				stmt := formatOne(Query{Table: "books", Filters: tc.filter}, books)
				Expect(stmt.SQL).To(Equal(tc.output), "filter: %s", tc.filter)
				Expect(stmt.Multiple).To(BeTrue())
			}
		})

		It("binds literal values in order", func() {
			stmt := formatOne(Query{Table: "books", Filters: "type eq 'fiction' and price lt 10"}, books)

			Expect(stmt.Parameters).To(Equal([]Parameter{
				{Name: "p1", Position: 1, Value: "fiction"},
				{Name: "p2", Position: 2, Value: int64(10)},
			}))
		})

		It("tags real literals as float", func() {
			stmt := formatOne(Query{Table: "books", Filters: "price lt 10.5"}, books)

			Expect(stmt.Parameters).To(HaveLen(1))
			Expect(stmt.Parameters[0].Value).To(Equal(10.5))
			Expect(stmt.Parameters[0].Type).To(Equal("float"))
		})

		It("binds boolean literals", func() {
			stmt := formatOne(Query{Table: "books", Filters: "inStock eq false"}, books)

			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books] WHERE ([inStock] = @p1)"))
			Expect(values(stmt)).To(Equal([]any{false}))
		})

		It("decodes base64 literals compared to binary columns", func() {
			stmt := formatOne(Query{Table: "books", Filters: "version eq 'AAAAAAAAB9E='"}, books)

			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books] WHERE ([version] = @p1)"))
			Expect(values(stmt)).To(Equal([]any{[]byte{0, 0, 0, 0, 0, 0, 0x07, 0xd1}}))
		})

		It("decodes configured binary columns", func() {
			cfg := TableConfig{Flavor: MSSQL, BinaryColumns: []string{"Checksum"}}
			stmt := formatOne(Query{Table: "books", Filters: "checksum eq 'AQI='"}, cfg)

			Expect(values(stmt)).To(Equal([]any{[]byte{1, 2}}))
		})

		It("uses the parameter prefix", func() {
			stmt := formatOne(Query{Table: "books", Filters: "price lt 10"}, books, WithParameterPrefix("z"))

			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books] WHERE ([price] < @z1)"))
			Expect(stmt.Parameters[0].Name).To(Equal("z1"))
		})
	})

	Context("selection and ordering", func() {
		It("selects columns", func() {
			stmt := formatOne(Query{Table: "books", Selections: "id, title"}, books)
			Expect(stmt.SQL).To(Equal("SELECT [id], [title] FROM [dbo].[books]"))
		})

		It("orders rows", func() {
			stmt := formatOne(Query{Table: "books", Ordering: "title desc, price"}, books)
			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books] ORDER BY [title] DESC, [price]"))
		})

		It("orders by an expression", func() {
			stmt := formatOne(Query{Table: "books", Ordering: "length(title) desc"}, books)
			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books] ORDER BY (LEN([title] + 'X') - 1) DESC"))
		})

		It("rejects invalid column names", func() {
			_, err := Format(Query{Table: "books", Selections: "id, ti-tle"}, books)
			Expect(srvErrors.IsBadRequestError(err)).To(BeTrue())
		})
	})

	Context("limits and paging", func() {
		It("renders take as TOP", func() {
			stmt := formatOne(Query{Table: "books", Take: int64Ptr(10), Ordering: "title"}, books)
			Expect(stmt.SQL).To(Equal("SELECT TOP 10 * FROM [dbo].[books] ORDER BY [title]"))
		})

		It("caps take by the result limit", func() {
			stmt := formatOne(Query{Table: "books", Take: int64Ptr(50), ResultLimit: int64Ptr(20)}, books)
			Expect(stmt.SQL).To(Equal("SELECT TOP 20 * FROM [dbo].[books]"))

			stmt = formatOne(Query{Table: "books", ResultLimit: int64Ptr(20)}, books)
			Expect(stmt.SQL).To(Equal("SELECT TOP 20 * FROM [dbo].[books]"))
		})

		It("treats a zero result limit as unset", func() {
			stmt := formatOne(Query{Table: "books", ResultLimit: int64Ptr(0)}, books)
			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books]"))
		})

		It("pages with a row number window", func() {
			stmt := formatOne(Query{Table: "books", Skip: int64Ptr(4), Take: int64Ptr(5)}, books)
			Expect(stmt.SQL).To(Equal("SELECT * FROM (SELECT ROW_NUMBER() OVER (ORDER BY [id]) AS [ROW_NUMBER], * " +
				"FROM [dbo].[books] WHERE (1 = 1)) AS [t1] " +
				"WHERE [t1].[ROW_NUMBER] BETWEEN 4 + 1 AND 4 + 5 ORDER BY [t1].[ROW_NUMBER]"))
		})

		It("pages filtered, ordered and projected rows", func() {
			stmt := formatOne(Query{
				Table:      "books",
				Filters:    "price gt 1",
				Ordering:   "title desc",
				Selections: "id, title",
				Skip:       int64Ptr(10),
				Take:       int64Ptr(20),
			}, books)

			Expect(stmt.SQL).To(Equal("SELECT [t1].[ROW_NUMBER], [t1].[id], [t1].[title] FROM " +
				"(SELECT ROW_NUMBER() OVER (ORDER BY [title] DESC) AS [ROW_NUMBER], [id], [title] " +
				"FROM [dbo].[books] WHERE ([price] > @p1)) AS [t1] " +
				"WHERE [t1].[ROW_NUMBER] BETWEEN 10 + 1 AND 10 + 20 ORDER BY [t1].[ROW_NUMBER]"))
			Expect(values(stmt)).To(Equal([]any{int64(1)}))
		})

		It("pages to the end when only skip is given", func() {
			stmt := formatOne(Query{Table: "books", Skip: int64Ptr(5)}, books)
			Expect(stmt.SQL).To(ContainSubstring("BETWEEN 5 + 1 AND 5 + 9007199254740992"))
		})

		It("ignores a zero skip without take", func() {
			stmt := formatOne(Query{Table: "books", Skip: int64Ptr(0)}, books)
			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books]"))
		})

		It("pages with OFFSET and FETCH when asked to", func() {
			stmt := formatOne(Query{Table: "books", Skip: int64Ptr(4), Take: int64Ptr(5)}, books, WithOffsetFetchPaging())
			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books] WHERE (1 = 1) ORDER BY [id] OFFSET 4 ROWS FETCH NEXT 5 ROWS ONLY"))
		})

		It("rejects negative values", func() {
			_, err := Format(Query{Table: "books", Skip: int64Ptr(-1)}, books)
			Expect(srvErrors.IsBadRequestError(err)).To(BeTrue())
			Expect(err.Error()).To(Equal("skip must not be negative: -1"))

			_, err = Format(Query{Table: "books", Take: int64Ptr(-2)}, books)
			Expect(err).To(MatchError("take must not be negative: -2"))
		})
	})

	Context("inline count", func() {
		It("adds a count statement continuing the parameter numbering", func() {
			statements, err := Format(Query{
				Table:       "books",
				Filters:     "price lt 10 and type eq 'a'",
				Take:        int64Ptr(3),
				InlineCount: InlineCountAllPages,
			}, books)
			Expect(err).ToNot(HaveOccurred())
			Expect(statements).To(HaveLen(2))

			Expect(statements[0].SQL).To(Equal("SELECT TOP 3 * FROM [dbo].[books] WHERE (([price] < @p1) AND ([type] = @p2))"))
			Expect(statements[1].SQL).To(Equal("SELECT COUNT(*) AS [count] FROM [dbo].[books] WHERE (([price] < @p3) AND ([type] = @p4))"))
			Expect(statements[1].Parameters).To(Equal([]Parameter{
				{Name: "p3", Position: 3, Value: int64(10)},
				{Name: "p4", Position: 4, Value: "a"},
			}))
		})

		It("counts without a filter", func() {
			statements, err := Format(Query{Table: "books", IncludeTotalCount: true}, books)
			Expect(err).ToNot(HaveOccurred())
			Expect(statements).To(HaveLen(2))
			Expect(statements[1].SQL).To(Equal("SELECT COUNT(*) AS [count] FROM [dbo].[books]"))
			Expect(statements[1].Parameters).To(BeEmpty())
		})
	})

	Context("table configuration", func() {
		It("qualifies the table with the schema", func() {
			stmt := formatOne(Query{Table: "books"}, TableConfig{Flavor: MSSQL, Schema: "testapp"})
			Expect(stmt.SQL).To(Equal("SELECT * FROM [testapp].[books]"))

			stmt = formatOne(Query{Table: "books"}, TableConfig{Flavor: MSSQL, Schema: "test-app"})
			Expect(stmt.SQL).To(Equal("SELECT * FROM [test_app].[books]"))
		})

		It("uses the configured table name", func() {
			stmt := formatOne(Query{Table: "ignored"}, TableConfig{Name: "novels"})
			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[novels]"))
		})

		It("hides soft deleted rows", func() {
			cfg := TableConfig{Flavor: MSSQL, SoftDelete: true}

			stmt := formatOne(Query{Table: "books", Filters: "price lt 10"}, cfg)
			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books] WHERE (([price] < @p1) AND ([deleted] = @p2))"))
			Expect(values(stmt)).To(Equal([]any{int64(10), false}))

			stmt = formatOne(Query{Table: "books", IncludeDeleted: true}, cfg)
			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books]"))
		})

		It("restricts to a numeric id", func() {
			stmt := formatOne(Query{Table: "books", Filters: "price lt 10", ID: 5}, books)
			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books] WHERE (([price] < @p1) AND ([id] = @p2))"))
			Expect(values(stmt)).To(Equal([]any{int64(10), int64(5)}))

			stmt = formatOne(Query{Table: "books", ID: "7"}, books)
			Expect(values(stmt)).To(Equal([]any{int64(7)}))
		})

		It("restricts to a string id", func() {
			stmt := formatOne(Query{Table: "books", ID: "abc"}, TableConfig{Flavor: MSSQL, HasStringID: true})
			Expect(stmt.SQL).To(Equal("SELECT * FROM [dbo].[books] WHERE ([id] = @p1)"))
			Expect(values(stmt)).To(Equal([]any{"abc"}))
		})

		It("rejects a non numeric id for numeric tables", func() {
			_, err := Format(Query{Table: "books", ID: "1 or 1 = 1"}, books)
			Expect(srvErrors.IsBadRequestError(err)).To(BeTrue())
		})

		It("rejects invalid table names", func() {
			_, err := Format(Query{Table: "books; drop table x"}, books)
			Expect(srvErrors.IsBadRequestError(err)).To(BeTrue())
			Expect(err.Error()).To(HavePrefix("books; drop table x is not a valid identifier."))
		})

		It("rejects unknown flavors", func() {
			_, err := Format(Query{Table: "books"}, TableConfig{Flavor: "oracle"})
			Expect(err).To(MatchError(`unsupported sql flavor "oracle"`))
		})
	})

	// Given the same query and table configuration
	// When we format it twice with fresh formatters
	// Then the SQL and parameters should be identical
	It("formats the same query identically every time", func() {
		// Arrange
		query := Query{
			Table:       "books",
			Filters:     "startswith(title, 'a') and version eq 'AQID' and price lt 10.5",
			Ordering:    "title desc",
			Selections:  "id, title",
			Skip:        int64Ptr(10),
			Take:        int64Ptr(20),
			InlineCount: InlineCountAllPages,
		}
		cfg := TableConfig{Flavor: MSSQL, SoftDelete: true, BinaryColumns: []string{"cover"}}

		// Act
		first, err := Format(query, cfg)
		Expect(err).ToNot(HaveOccurred())
		second, err := Format(query, cfg)
		Expect(err).ToNot(HaveOccurred())

		// Assert
		Expect(first).To(HaveLen(2))
		Expect(second).To(Equal(first))
		Expect(*query.Skip).To(Equal(int64(10)))
	})

	Context("errors", func() {
		It("returns parse errors", func() {
			_, err := Format(Query{Table: "books", Filters: "price lt"}, books)
			Expect(odata.IsParseError(err)).To(BeTrue())
		})

		It("rejects navigation properties", func() {
			_, err := Format(Query{Table: "books", Filters: "author/name eq 'x'"}, books)
			Expect(srvErrors.IsBadRequestError(err)).To(BeTrue())
		})

		It("rejects invalid base64 for binary columns", func() {
			_, err := Format(Query{Table: "books", Filters: "version eq '***'"}, books)
			Expect(err).To(MatchError("'***' is not a valid base64 binary value"))
		})
	})
})
