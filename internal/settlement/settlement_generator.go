package settlement

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	settlementerrors "go-settlement/internal/settlement/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const defaultGenerationConcurrency = 8

type GeneratorConfig struct {
	Concurrency int
	Clock       Clock
}

type GenerationResult struct {
	Category     Category
	Period       Period
	CreatedCount int
	SkippedCount int
	Records      []Settlement
}

// Generator materializes missing settlements. Running it twice for the same
// period creates nothing the second time.
type Generator struct {
	store       Store
	resolvers   ResolverSet
	clock       Clock
	concurrency int
	sf          singleflight.Group
	logger      *zap.Logger
}

func NewGenerator(store Store, resolvers ResolverSet, cfg GeneratorConfig, logger ...*zap.Logger) *Generator {
	l := zap.L().Named("settlement.generator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settlement.generator")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultGenerationConcurrency
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	return &Generator{
		store:       store,
		resolvers:   resolvers,
		clock:       cfg.Clock,
		concurrency: cfg.Concurrency,
		logger:      l,
	}
}

// diff returns obligations without a record plus the number already covered.
func (g *Generator) diff(ctx context.Context, companyID string, period Period, category Category) ([]Obligation, int, error) {
	resolver, err := g.resolvers.For(category)
	if err != nil {
		return nil, 0, err
	}

	obligations, err := resolver.Resolve(ctx, companyID, period)
	if err != nil {
		if !errors.Is(err, settlementerrors.ErrDataSourceUnavailable) &&
			!errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			err = settlementerrors.ErrDataSourceUnavailable.WithErr(err)
		}
		return nil, 0, err
	}
	if len(obligations) == 0 {
		return nil, 0, nil
	}

	existing, err := g.store.ExistingWorkerKeys(ctx, companyID, category, period)
	if err != nil {
		return nil, 0, err
	}

	missing := make([]Obligation, 0, len(obligations))
	seen := make(map[string]struct{}, len(obligations))
	covered := 0
	for _, o := range obligations {
		key := o.WorkerKey()
		if _, dup := seen[key]; dup {
			g.logger.Warn("resolver returned worker twice",
				zap.String("category", string(category)),
				zap.String("worker_key", key),
			)
			continue
		}
		seen[key] = struct{}{}

		if _, ok := existing[key]; ok {
			covered++
			continue
		}
		missing = append(missing, o)
	}
	return missing, covered, nil
}

func (g *Generator) Generate(ctx context.Context, companyID string, period Period, category Category) (GenerationResult, error) {
	result := GenerationResult{Category: category, Period: period}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return result, settlementerrors.ErrInvalidCompanyID
	}

	missing, covered, err := g.diff(ctx, companyID, period, category)
	if err != nil {
		g.logger.Error("settlement generation aborted, no records created",
			zap.String("company_id", companyID),
			zap.String("period", string(period)),
			zap.String("category", string(category)),
			zap.Error(err),
		)
		return result, err
	}
	result.SkippedCount = covered
	if len(missing) == 0 {
		return result, nil
	}

	// Build every record before inserting so bad inputs abort the whole run.
	now := g.clock.Now()
	records := make([]*Settlement, 0, len(missing))
	for _, o := range missing {
		rec, err := newRecord(companyUUID, o, OriginGenerated, nil, now)
		if err != nil {
			g.logger.Error("settlement amount computation failed",
				zap.String("period", string(period)),
				zap.String("category", string(category)),
				zap.String("worker_key", o.WorkerKey()),
				zap.Error(err),
			)
			return result, err
		}
		records = append(records, rec)
	}

	var (
		skipped atomic.Int64
		mu      sync.Mutex
		created = make([]Settlement, 0, len(records))
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for _, rec := range records {
		rec := rec
		eg.Go(func() error {
			err := g.store.InsertIfAbsent(egCtx, rec)
			if errors.Is(err, settlementerrors.ErrDuplicateObligation) {
				skipped.Add(1)
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			created = append(created, *rec)
			mu.Unlock()
			return nil
		})
	}
	err = eg.Wait()

	sort.Slice(created, func(i, j int) bool { return created[i].WorkerName < created[j].WorkerName })
	result.Records = created
	result.CreatedCount = len(created)
	result.SkippedCount += int(skipped.Load())

	if err != nil {
		g.logger.Error("settlement insert failed",
			zap.String("company_id", companyID),
			zap.String("period", string(period)),
			zap.String("category", string(category)),
			zap.Int("created", result.CreatedCount),
			zap.Error(err),
		)
		return result, err
	}

	g.logger.Info("settlements generated",
		zap.String("company_id", companyID),
		zap.String("period", string(period)),
		zap.String("category", string(category)),
		zap.Int("created", result.CreatedCount),
		zap.Int("skipped", result.SkippedCount),
	)
	return result, nil
}

// GenerateAll runs every category in order and stops at the first failure.
func (g *Generator) GenerateAll(ctx context.Context, companyID string, period Period) ([]GenerationResult, error) {
	results := make([]GenerationResult, 0, len(AllCategories()))
	for _, c := range AllCategories() {
		res, err := g.Generate(ctx, companyID, period, c)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// CountPending reports how many records Generate would create. Identical
// concurrent calls share one lookup.
func (g *Generator) CountPending(ctx context.Context, companyID string, period Period, category Category) (int, error) {
	key := companyID + "|" + string(period) + "|" + string(category)
	v, err, _ := g.sf.Do(key, func() (any, error) {
		missing, _, err := g.diff(ctx, companyID, period, category)
		if err != nil {
			return 0, err
		}
		return len(missing), nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (g *Generator) PendingSummary(ctx context.Context, companyID string, period Period) (map[Category]int, error) {
	out := make(map[Category]int, len(AllCategories()))
	for _, c := range AllCategories() {
		n, err := g.CountPending(ctx, companyID, period, c)
		if err != nil {
			return nil, err
		}
		out[c] = n
	}
	return out, nil
}
