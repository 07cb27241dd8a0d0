package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/odata-sql/internal/models"
	srvErrors "github.com/kubev2v/odata-sql/pkg/errors"
	"github.com/kubev2v/odata-sql/pkg/sqlformat"
)

const tableDefinitions = "table_definitions"

var tableColumns = []string{"name", "flavor", "schema_name", "soft_delete", "string_id", "binary_columns", "created_at"}

type TableStore struct {
	db QueryInterceptor
}

func NewTableStore(db QueryInterceptor) *TableStore {
	return &TableStore{db: db}
}

func (s *TableStore) List(ctx context.Context) ([]models.Table, error) {
	query, args, err := sq.Select(tableColumns...).
		From(tableDefinitions).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []models.Table{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *t)
	}

	return tables, rows.Err()
}

func (s *TableStore) Get(ctx context.Context, name string) (*models.Table, error) {
	query, args, err := sq.Select(tableColumns...).
		From(tableDefinitions).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, err
	}

	t, err := scanTable(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewTableNotFoundError(name)
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (s *TableStore) Create(ctx context.Context, t models.Table) error {
	if _, err := s.Get(ctx, t.Name); err == nil {
		return srvErrors.NewDuplicateResourceError("table", t.Name)
	} else if !srvErrors.IsResourceNotFoundError(err) {
		return err
	}

	query, args, err := sq.Insert(tableDefinitions).
		Columns("name", "flavor", "schema_name", "soft_delete", "string_id", "binary_columns").
		Values(t.Name, string(t.Flavor), t.Schema, t.SoftDelete, t.StringID, strings.Join(t.BinaryColumns, ",")).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *TableStore) Update(ctx context.Context, t models.Table) error {
	query, args, err := sq.Update(tableDefinitions).
		Set("flavor", string(t.Flavor)).
		Set("schema_name", t.Schema).
		Set("soft_delete", t.SoftDelete).
		Set("string_id", t.StringID).
		Set("binary_columns", strings.Join(t.BinaryColumns, ",")).
		Where(sq.Eq{"name": t.Name}).
		ToSql()
	if err != nil {
		return err
	}

	return s.execOne(ctx, t.Name, query, args)
}

func (s *TableStore) Delete(ctx context.Context, name string) error {
	query, args, err := sq.Delete(tableDefinitions).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return err
	}

	return s.execOne(ctx, name, query, args)
}

// execOne runs a statement that must touch exactly the row named name.
func (s *TableStore) execOne(ctx context.Context, name, query string, args []any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return srvErrors.NewTableNotFoundError(name)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTable(row rowScanner) (*models.Table, error) {
	var (
		t             models.Table
		flavor        string
		binaryColumns string
	)

	if err := row.Scan(&t.Name, &flavor, &t.Schema, &t.SoftDelete, &t.StringID, &binaryColumns, &t.CreatedAt); err != nil {
		return nil, err
	}

	t.Flavor = sqlformat.Flavor(flavor)
	if binaryColumns != "" {
		t.BinaryColumns = strings.Split(binaryColumns, ",")
	}

	return &t, nil
}
