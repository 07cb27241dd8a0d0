// Package handlers implements the HTTP API layer of odata-sql.
//
// Handlers decode requests, call the translator and table services and map
// service errors to HTTP status codes. They never build SQL themselves.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request binding                                              │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  TranslatorService │ TableService                               │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Handler Structure
//
// All handlers are methods on a single Handler struct holding the service
// interfaces:
//
//	type Handler struct {
//	    translatorSrv TranslatorService
//	    tableSrv      TableService
//	}
//
// Routes are mounted on the /api/v1 group with:
//
//	h.RegisterRoutes(router)
//
// # API Endpoints
//
// Translation Endpoints (translate.go):
//
//	┌────────┬──────────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint         │ Description                              │
//	├────────┼──────────────────┼──────────────────────────────────────────┤
//	│ GET    │ /health          │ Liveness                                 │
//	│ POST   │ /translate       │ Translate one query into statements      │
//	│ POST   │ /translate/batch │ Translate several queries concurrently   │
//	│ POST   │ /filter          │ Render only the WHERE condition          │
//	└────────┴──────────────────┴──────────────────────────────────────────┘
//
// Table Endpoints (tables.go):
//
//	┌────────┬─────────────────────┬───────────────────────────────────────┐
//	│ Method │ Endpoint            │ Description                           │
//	├────────┼─────────────────────┼───────────────────────────────────────┤
//	│ GET    │ /tables             │ List registered tables                │
//	│ GET    │ /tables/{name}      │ Get a table definition                │
//	│ PUT    │ /tables/{name}      │ Create or replace a table definition  │
//	│ DELETE │ /tables/{name}      │ Remove a table definition             │
//	│ GET    │ /tables/{name}/query│ Translate URL query options           │
//	└────────┴─────────────────────┴───────────────────────────────────────┘
//
// # Translate Handler
//
// POST /translate
//
// Request:
//
//	{
//	    "table": "books",
//	    "filter": "price lt 10 and startswith(title, 'Go')",
//	    "orderBy": "title desc",
//	    "select": "id,title",
//	    "skip": 20,
//	    "top": 10,
//	    "inlineCount": "allpages",
//	    "combined": true
//	}
//
// Response:
//
//	{
//	    "statements": [
//	        {
//	            "sql": "SELECT ... WHERE (([price] < @p1) AND ...",
//	            "parameters": [{"name": "p1", "position": 1, "value": 10}]
//	        }
//	    ],
//	    "combined": {"sql": "...; ", "parameters": [...]}
//	}
//
// Binary parameters are returned base64 encoded.
//
// POST /translate/batch takes {"requests": [...]} and answers
// {"results": [...]} in request order. A request that fails to translate
// carries an "error" field; the others are unaffected.
//
// # Table Handlers
//
// PUT /tables/{name} answers 201 when the table is new and 200 when an
// existing definition was replaced. The name in the path wins over the body.
//
// GET /tables/{name}/query reads $filter, $orderby, $select, $skip, $top and
// $inlinecount from the URL:
//
//	/api/v1/tables/books/query?$filter=price%20lt%2010&$top=5
//
// # Error Handling
//
// Handlers use a consistent error response format:
//
//	{ "error": "error message" }
//
// HTTP Status Code Mapping:
//
//	┌─────────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                  │ Status │ When                         │
//	├─────────────────────────────┼────────┼──────────────────────────────┤
//	│ Binding error               │ 400    │ Malformed body or parameter  │
//	│ BadRequestError             │ 400    │ Query cannot be translated   │
//	│ odata.ParseError et al.     │ 400    │ Filter syntax error          │
//	│ ResourceNotFoundError       │ 404    │ Table not registered         │
//	│ DuplicateResourceError      │ 409    │ Table already exists         │
//	│ Internal error              │ 500    │ Unexpected service errors    │
//	└─────────────────────────────┴────────┴──────────────────────────────┘
//
// # Model Conversion
//
// Handlers convert between internal models and API types using extension
// functions defined in api/v1/extension.go:
//
//   - v1.TranslateRequest.ToModel() → models.TranslateRequest
//   - v1.NewTranslateResponse([]sqlformat.Statement, bool) → v1.TranslateResponse
//   - v1.NewBatchResponse([]models.BatchResult, ...) → v1.BatchResponse
//   - v1.NewTable(models.Table) → v1.Table
package handlers
