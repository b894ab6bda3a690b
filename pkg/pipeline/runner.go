package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gedgraph/pkg/cache"
	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/locate"
	"github.com/matzehuels/gedgraph/pkg/names"
	"github.com/matzehuels/gedgraph/pkg/observability"
	"github.com/matzehuels/gedgraph/pkg/records"
	"github.com/matzehuels/gedgraph/pkg/selection"
)

// Runner executes the pipeline with a record cache.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// means log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs load → locate → select → render. The document is returned in
// Result.Output; nothing is written when any stage fails.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	loadStart := time.Now()
	rs, hit, err := r.Load(ctx, opts.Input, opts.Refresh)
	if err != nil {
		return nil, err
	}
	if rs.IndividualCount() == 0 {
		return nil, errors.New(errors.ErrCodeInputShape, "%s contains no individuals", opts.Input)
	}
	result.Records = rs
	result.CacheHit = hit
	result.Stats.Individuals = rs.IndividualCount()
	result.Stats.Unions = rs.UnionCount()
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Debug("loaded records",
		"individuals", rs.IndividualCount(),
		"unions", rs.UnionCount(),
		"cached", hit,
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := r.Root(rs, opts)
	if err != nil {
		return nil, err
	}
	result.Root = root

	sel, err := selection.Select(rs, opts.Mode, root)
	if err != nil {
		return nil, err
	}
	result.Selection = sel
	result.Stats.SelectedIndividuals = sel.IndividualCount()
	result.Stats.SelectedUnions = sel.UnionCount()
	observability.Pipeline().OnSelectComplete(ctx, opts.Mode.String(), sel.IndividualCount(), sel.UnionCount())

	r.Logger.Info("selected",
		"include", opts.Mode,
		"individuals", sel.IndividualCount(),
		"unions", sel.UnionCount())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Format.String())

	var buf bytes.Buffer
	err = Render(ctx, &buf, rs, sel, root, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Format.String(), result.Stats.RenderTime, err)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
		}
		return nil, err
	}
	result.Output = buf.Bytes()

	r.Logger.Debug("rendered",
		"format", opts.Format,
		"bytes", len(result.Output),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Root resolves the root person for rooted modes. It returns nil for
// ModeAll and a PERSON_NOT_FOUND error when the identifier does not match.
func (r *Runner) Root(rs *records.Set, opts Options) (*records.Individual, error) {
	if !opts.Mode.NeedsRoot() {
		return nil, nil
	}
	root, ok := locate.Person(rs, opts.PersonID, opts.IDItem)
	if !ok {
		return nil, errors.New(errors.ErrCodePersonNotFound, "no person with %s %q", opts.IDItem, opts.PersonID)
	}
	r.Logger.Info("found person", "id", root.ID, "name", names.Resolver{}.Name(root))
	return root, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
