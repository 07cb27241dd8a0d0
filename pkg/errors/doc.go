// Package errors provides custom error types for odata-sql.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// Syntax errors raised while parsing a filter live in package odata
// (ParseError, ArgumentCountError, TypeConstructionError). The types here
// cover everything past the parser.
//
// # Error Types Overview
//
//	┌──────────────────────────┬────────┬─────────────────────────────────────┐
//	│ Error Type               │ HTTP   │ Description                         │
//	├──────────────────────────┼────────┼─────────────────────────────────────┤
//	│ BadRequestError          │ 400    │ Query or table config is invalid    │
//	│ odata.ParseError et al.  │ 400    │ Filter or orderby failed to parse   │
//	│ ResourceNotFoundError    │ 404    │ Requested table doesn't exist       │
//	│ DuplicateResourceError   │ 409    │ Table already registered            │
//	└──────────────────────────┴────────┴─────────────────────────────────────┘
//
// # BadRequestError
//
// Indicates the input cannot be translated: an invalid identifier, an
// unknown sql flavor, a malformed base64 binary literal or a negative
// paging value.
//
// Constructors:
//   - NewBadRequestError(format string, args ...any)
//   - NewInvalidIdentifierError(name string)
//   - NewUnsupportedFlavorError(flavor string)
//
// # ResourceNotFoundError
//
// Indicates a requested resource was not found in the store.
//
// Constructors:
//   - NewResourceNotFoundError(kind, id string) - Generic resource not found
//   - NewTableNotFoundError(name string) - Table definition not registered
//
// Usage:
//
//	if errors.IsResourceNotFoundError(err) {
//	    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
//	}
//
// # DuplicateResourceError
//
// Indicates an insert collided with an existing key.
//
// Constructor:
//   - NewDuplicateResourceError(kind, id string)
//
// # Handler Error Mapping
//
//	switch {
//	case errors.IsBadRequestError(err), odata.IsParseError(err):
//	    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
//	case errors.IsResourceNotFoundError(err):
//	    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
//	case errors.IsDuplicateResourceError(err):
//	    c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
//	}
package errors
