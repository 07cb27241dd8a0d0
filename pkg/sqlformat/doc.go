// Package sqlformat renders OData queries as parameterized SQL for Microsoft
// SQL Server (mssql) and SQLite.
//
// A query's $filter is parsed by package odata, normalized with
// odata.Booleanize and odata.ConvertTypes, and rendered with every literal
// bound as a parameter. Placeholders are named @p1, @p2, ... in order of
// appearance, and numbering continues across the statements of one call.
//
// Statement shapes:
//
//	mssql, no paging:   SELECT TOP n <cols> FROM [schema].[table] WHERE ... ORDER BY ...
//	mssql, skip+take:   SELECT * FROM (SELECT ROW_NUMBER() OVER (ORDER BY <order|[id]>) AS [ROW_NUMBER], <cols>
//	                    FROM [schema].[table] WHERE <filter|(1 = 1)>) AS [t1]
//	                    WHERE [t1].[ROW_NUMBER] BETWEEN skip + 1 AND skip + take ORDER BY [t1].[ROW_NUMBER]
//	sqlite:             SELECT <cols> FROM [table] WHERE ... ORDER BY ... LIMIT n OFFSET skip
//	inline count:       SELECT COUNT(*) AS [count] FROM <table> WHERE ...
//
// With WithOffsetFetchPaging the mssql page is rendered as
// ORDER BY ... OFFSET skip ROWS FETCH NEXT take ROWS ONLY instead.
package sqlformat
