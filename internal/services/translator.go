package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/kubev2v/odata-sql/internal/config"
	"github.com/kubev2v/odata-sql/internal/models"
	srvErrors "github.com/kubev2v/odata-sql/pkg/errors"
	"github.com/kubev2v/odata-sql/pkg/scheduler"
	"github.com/kubev2v/odata-sql/pkg/sqlformat"
)

// TableGetter resolves registered table definitions.
type TableGetter interface {
	Get(ctx context.Context, name string) (*models.Table, error)
}

type TranslatorService struct {
	tables   TableGetter
	defaults config.Translator
	sched    *scheduler.Scheduler
	logger   *zap.SugaredLogger
}

func NewTranslatorService(tables TableGetter, defaults config.Translator) *TranslatorService {
	return &TranslatorService{
		tables:   tables,
		defaults: defaults,
		sched:    scheduler.NewScheduler(defaults.Workers),
		logger:   zap.S().Named("translator"),
	}
}

// Translate formats req against its table. Unregistered tables use the
// configured defaults.
func (t *TranslatorService) Translate(ctx context.Context, req models.TranslateRequest) ([]sqlformat.Statement, error) {
	cfg, err := t.tableConfig(ctx, req.Table)
	if err != nil {
		return nil, err
	}

	query := req.Query
	query.Table = req.Table
	if query.ResultLimit == nil && t.defaults.ResultLimit > 0 {
		limit := t.defaults.ResultLimit
		query.ResultLimit = &limit
	}

	opts := []sqlformat.Option{sqlformat.WithParameterPrefix(t.prefix(req))}
	if t.defaults.OffsetFetch {
		opts = append(opts, sqlformat.WithOffsetFetchPaging())
	}

	statements, err := sqlformat.Format(query, cfg, opts...)
	if err != nil {
		return nil, err
	}

	t.logger.Debugw("translated query", "table", req.Table, "filter", query.Filters, "statements", len(statements))
	return statements, nil
}

// Filter renders only the WHERE condition of req.
func (t *TranslatorService) Filter(ctx context.Context, req models.TranslateRequest) (sqlformat.Statement, error) {
	cfg, err := t.tableConfig(ctx, req.Table)
	if err != nil {
		return sqlformat.Statement{}, err
	}

	return sqlformat.Filter(req.Query, t.prefix(req), cfg)
}

// TranslateBatch translates the requests concurrently. Results are in
// request order; a failing request does not fail the others.
func (t *TranslatorService) TranslateBatch(ctx context.Context, reqs []models.TranslateRequest) ([]models.BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	futures := make([]*scheduler.Future[scheduler.Result[any]], 0, len(reqs))
	for _, req := range reqs {
		futures = append(futures, t.sched.AddWork(func(ctx context.Context) (any, error) {
			return t.Translate(ctx, req)
		}))
	}

	results := make([]models.BatchResult, len(reqs))
	for i, f := range futures {
		r, err := f.Wait(ctx)
		if err != nil {
			for _, rest := range futures[i+1:] {
				rest.Stop()
			}
			return nil, err
		}

		results[i].Err = r.Err
		if statements, ok := r.Data.([]sqlformat.Statement); ok {
			results[i].Statements = statements
		}
	}

	return results, nil
}

// Close stops the batch workers.
func (t *TranslatorService) Close() {
	t.sched.Close()
}

func (t *TranslatorService) prefix(req models.TranslateRequest) string {
	if req.ParameterPrefix != "" {
		return req.ParameterPrefix
	}
	return t.defaults.ParameterPrefix
}

func (t *TranslatorService) tableConfig(ctx context.Context, name string) (sqlformat.TableConfig, error) {
	table, err := t.tables.Get(ctx, name)
	if err == nil {
		return table.TableConfig(), nil
	}
	if !srvErrors.IsResourceNotFoundError(err) {
		return sqlformat.TableConfig{}, err
	}

	flavor, err := sqlformat.ParseFlavor(t.defaults.Flavor)
	if err != nil {
		return sqlformat.TableConfig{}, srvErrors.NewUnsupportedFlavorError(t.defaults.Flavor)
	}

	return sqlformat.TableConfig{
		Flavor:     flavor,
		Schema:     t.defaults.Schema,
		SoftDelete: t.defaults.SoftDelete,
	}, nil
}
