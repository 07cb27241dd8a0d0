package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/odata-sql/api/v1"
	"github.com/kubev2v/odata-sql/internal/handlers"
	"github.com/kubev2v/odata-sql/internal/models"
	srvErrors "github.com/kubev2v/odata-sql/pkg/errors"
	"github.com/kubev2v/odata-sql/pkg/sqlformat"
)

var _ = Describe("Table Handlers", func() {
	var (
		mockTranslator *MockTranslatorService
		mockTables     *MockTableService
		router         *gin.Engine
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		mockTranslator = &MockTranslatorService{}
		mockTables = &MockTableService{
			GetResult: &models.Table{Name: "books", Flavor: sqlformat.MSSQL, Schema: "dbo"},
		}
		handler := handlers.New(mockTranslator, mockTables)
		router = gin.New()
		handler.RegisterRoutes(router.Group("/api/v1"))
	})

	Describe("ListTables", func() {
		// Given two registered tables
		// When we list tables
		// Then both should be returned
		It("should return all tables", func() {
			// Arrange
			mockTables.ListResult = []models.Table{
				{Name: "books", Flavor: sqlformat.MSSQL, Schema: "dbo"},
				{Name: "movies", Flavor: sqlformat.SQLite, SoftDelete: true},
			}

			// Act
			w := do(http.MethodGet, "/api/v1/tables", "")

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			var response []v1.Table
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response).To(HaveLen(2))
			Expect(response[1].Flavor).To(Equal("sqlite"))
			Expect(response[1].SoftDelete).To(BeTrue())
		})

		// Given no registered tables
		// When we list tables
		// Then an empty array should be returned
		It("should return an empty array", func() {
			w := do(http.MethodGet, "/api/v1/tables", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`[]`))
		})

		It("should return 500 when the store fails", func() {
			mockTables.ListError = errors.New("db closed")

			w := do(http.MethodGet, "/api/v1/tables", "")

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(MatchJSON(`{"error":"failed to list tables"}`))
		})
	})

	Describe("GetTable", func() {
		It("should return the table", func() {
			w := do(http.MethodGet, "/api/v1/tables/books", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var response v1.Table
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Name).To(Equal("books"))
			Expect(response.Schema).To(Equal("dbo"))
		})

		// Given an unknown table
		// When we get it
		// Then it should return 404
		It("should return 404 for unknown tables", func() {
			// Arrange
			mockTables.GetResult = nil
			mockTables.GetError = srvErrors.NewTableNotFoundError("nope")

			// Act
			w := do(http.MethodGet, "/api/v1/tables/nope", "")

			// Assert
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(MatchJSON(`{"error":"table \"nope\" not found"}`))
		})
	})

	Describe("PutTable", func() {
		// Given a new table definition
		// When we put it
		// Then it should be created with 201 and the path name
		It("should create a table", func() {
			// Arrange
			mockTables.SaveCreated = true

			// Act
			w := do(http.MethodPut, "/api/v1/tables/books", `{"name":"other","flavor":"mssql","schema":"library","binaryColumns":["cover"]}`)

			// Assert
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(mockTables.LastSaved.Name).To(Equal("books"))
			Expect(mockTables.LastSaved.Schema).To(Equal("library"))
			Expect(mockTables.LastSaved.BinaryColumns).To(Equal([]string{"cover"}))
		})

		It("should return 200 when replacing", func() {
			w := do(http.MethodPut, "/api/v1/tables/books", `{"flavor":"sqlite"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockTables.LastSaved.Flavor).To(Equal(sqlformat.SQLite))
		})

		It("should reject an unknown flavor", func() {
			w := do(http.MethodPut, "/api/v1/tables/books", `{"flavor":"oracle"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		// Given the service rejects the definition
		// When we put it
		// Then it should return 400 with the validation message
		It("should return 400 on invalid identifiers", func() {
			// Arrange
			mockTables.SaveError = srvErrors.NewInvalidIdentifierError("1books")

			// Act
			w := do(http.MethodPut, "/api/v1/tables/1books", `{"flavor":"mssql"}`)

			// Assert
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("1books is not a valid identifier"))
		})
	})

	Describe("DeleteTable", func() {
		It("should return 204", func() {
			w := do(http.MethodDelete, "/api/v1/tables/books", "")

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(mockTables.DeleteCallCount).To(Equal(1))
		})

		It("should return 404 for unknown tables", func() {
			mockTables.DeleteError = srvErrors.NewTableNotFoundError("books")

			w := do(http.MethodDelete, "/api/v1/tables/books", "")

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("QueryTable", func() {
		// Given a registered table and OData options in the URL
		// When we query the table
		// Then the options should be bound into the translate request
		It("should bind the system query options", func() {
			// Arrange
			mockTranslator.TranslateResult = []sqlformat.Statement{{SQL: "SELECT TOP 5 * FROM [dbo].[books]"}}

			// Act
			w := do(http.MethodGet, "/api/v1/tables/books/query?$filter=price%20lt%2010&$orderby=title%20desc&$select=id,title&$skip=20&$top=5&$inlinecount=allpages", "")

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			q := mockTranslator.LastRequest.Query
			Expect(mockTranslator.LastRequest.Table).To(Equal("books"))
			Expect(q.Table).To(Equal("books"))
			Expect(q.Filters).To(Equal("price lt 10"))
			Expect(q.Ordering).To(Equal("title desc"))
			Expect(q.Selections).To(Equal("id,title"))
			Expect(*q.Skip).To(Equal(int64(20)))
			Expect(*q.Take).To(Equal(int64(5)))
			Expect(q.InlineCount).To(Equal("allpages"))

			var response v1.TranslateResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Statements[0].SQL).To(Equal("SELECT TOP 5 * FROM [dbo].[books]"))
		})

		It("should leave absent options unset", func() {
			w := do(http.MethodGet, "/api/v1/tables/books/query", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockTranslator.LastRequest.Query.Skip).To(BeNil())
			Expect(mockTranslator.LastRequest.Query.Take).To(BeNil())
			Expect(mockTranslator.LastRequest.Query.Filters).To(BeEmpty())
		})

		It("should return 400 for a non numeric $top", func() {
			w := do(http.MethodGet, "/api/v1/tables/books/query?$top=ten", "")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 404 for unregistered tables", func() {
			mockTables.GetResult = nil
			mockTables.GetError = srvErrors.NewTableNotFoundError("nope")

			w := do(http.MethodGet, "/api/v1/tables/nope/query", "")

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
