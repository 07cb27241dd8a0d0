// Package odata parses OData $filter and $orderby expressions into an
// expression tree and rewrites that tree ahead of SQL rendering.
//
// Grammar
//
// --- PARSER RULES ---
//
// expression     : and ( "or" and )* ;
// and            : comparison ( "and" comparison )* ;
// comparison     : additive ( ( "eq" | "ne" | "gt" | "ge" | "lt" | "le" ) additive )* ;
// additive       : multiplicative ( ( "add" | "sub" ) multiplicative )* ;
// multiplicative : unary ( ( "mul" | "div" | "mod" ) unary )* ;
// unary          : ( "-" | "not" ) unary
//                | primary ;
// primary        : primaryStart ( "/" member )* ;
// primaryStart   : "true" | "false" | "null"
//                | TYPE_KEYWORD STRING
//                | member
//                | STRING | INTEGER | REAL
//                | "(" expression ")" ;
// member         : IDENTIFIER ( "(" ( expression ( "," expression )* )? ")" )? ;
// ordering       : expression ( "asc" | "desc" )? ( "," ordering )* ;
//
// --- LEXER RULES ---
//
// IDENTIFIER     : [letter @ _] [letter digit _ -]* ;
// STRING         : "'" ( "''" | [^'] )* "'" ;
// INTEGER        : [0-9]+ [Ll]? ;
// REAL           : [0-9]+ ( "." [0-9]+ )? ( [Ee] [+-]? [0-9]+ )? [FfMmDd]? ;
// TYPE_KEYWORD   : "datetime" | "datetimeoffset" ;
//
// Operator words are case-sensitive. An identifier followed by "(" must name
// a built-in function (see LookupFunction).
//
// The tree is rewritten by two passes before rendering: Booleanize, which
// turns every logical operand into a predicate, and ConvertTypes, which
// decodes base64 literals compared against binary columns.
package odata
