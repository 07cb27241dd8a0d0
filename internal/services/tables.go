package services

import (
	"context"

	"github.com/kubev2v/odata-sql/internal/models"
	"github.com/kubev2v/odata-sql/internal/store"
	srvErrors "github.com/kubev2v/odata-sql/pkg/errors"
	"github.com/kubev2v/odata-sql/pkg/sqlformat"
)

type TableService struct {
	store *store.Store
}

func NewTableService(st *store.Store) *TableService {
	return &TableService{store: st}
}

func (t *TableService) List(ctx context.Context) ([]models.Table, error) {
	return t.store.Tables().List(ctx)
}

func (t *TableService) Get(ctx context.Context, name string) (*models.Table, error) {
	return t.store.Tables().Get(ctx, name)
}

// Save creates the table or replaces an existing definition. It reports
// whether the table was created.
func (t *TableService) Save(ctx context.Context, table models.Table) (bool, error) {
	if err := validateTable(&table); err != nil {
		return false, err
	}

	err := t.store.Tables().Update(ctx, table)
	if err == nil {
		return false, nil
	}
	if !srvErrors.IsResourceNotFoundError(err) {
		return false, err
	}

	if err := t.store.Tables().Create(ctx, table); err != nil {
		return false, err
	}
	return true, nil
}

func (t *TableService) Delete(ctx context.Context, name string) error {
	return t.store.Tables().Delete(ctx, name)
}

// validateTable checks the identifiers and normalizes flavor and schema.
func validateTable(t *models.Table) error {
	if !sqlformat.IsValidIdentifier(t.Name) {
		return srvErrors.NewInvalidIdentifierError(t.Name)
	}

	flavor, err := sqlformat.ParseFlavor(string(t.Flavor))
	if err != nil {
		return srvErrors.NewUnsupportedFlavorError(string(t.Flavor))
	}
	t.Flavor = flavor

	if flavor == sqlformat.MSSQL {
		t.Schema = sqlformat.NormalizeSchema(t.Schema)
		if !sqlformat.IsValidIdentifier(t.Schema) {
			return srvErrors.NewInvalidIdentifierError(t.Schema)
		}
	}

	for _, col := range t.BinaryColumns {
		if !sqlformat.IsValidIdentifier(col) {
			return srvErrors.NewInvalidIdentifierError(col)
		}
	}

	return nil
}
