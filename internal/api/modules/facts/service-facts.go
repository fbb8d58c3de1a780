package facts_module

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/ethanbaker/til/internal/observability"
	fact_store "github.com/ethanbaker/til/internal/stores/facts"
	"github.com/ethanbaker/til/pkg/facts"
	"github.com/ethanbaker/til/pkg/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// FactService validates requests and forwards them to the configured fact store
type FactService struct {
	store    facts.StoreInterface
	registry *facts.Registry
	metrics  *observability.FactMetrics
	logger   *logrus.Entry
	apiKey   string
	close    func() error
}

var factService *FactService

/** ---- INIT ---- */

// Init creates the fact service from configuration. MySQL is used when
// MYSQL_DATABASE is set, otherwise facts live in memory, seeded from FACTS_SEED_PATH
func Init(cfg *utils.Config, logger *logrus.Logger, metrics *observability.FactMetrics) error {
	registry, err := facts.LoadRegistryWithFallback(cfg.Get("CATEGORIES_PATH"))
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	var seed []facts.Fact
	if path := cfg.Get("FACTS_SEED_PATH"); path != "" {
		if seed, err = facts.LoadSeed(path); err != nil {
			return err
		}
	}

	log := logger.WithField("module", "FACTS")

	var store facts.StoreInterface
	closeFn := func() error { return nil }

	if dsn := cfg.MySQLDSN(); dsn != "" {
		dbStore, err := fact_store.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to create MySQL fact store: %w", err)
		}
		if err := dbStore.Seed(context.Background(), seed); err != nil {
			_ = dbStore.Close()
			return fmt.Errorf("failed to seed MySQL fact store: %w", err)
		}

		store = dbStore
		closeFn = dbStore.Close
		log.WithField("database", cfg.Get("MYSQL_DATABASE")).Info("using MySQL fact store")
	} else {
		memStore := fact_store.NewInMemoryStore()
		memStore.Seed(seed)

		store = memStore
		log.WithField("seeded", memStore.Len()).Warn("MYSQL_DATABASE not set, using in-memory fact store")
	}

	svc := NewService(store, registry, metrics, logger, cfg.Get("FACTS_API_KEY"))
	svc.close = closeFn
	SetService(svc)

	return nil
}

// NewService creates a fact service around an existing store
func NewService(store facts.StoreInterface, registry *facts.Registry, metrics *observability.FactMetrics, logger *logrus.Logger, apiKey string) *FactService {
	if registry == nil {
		registry = facts.DefaultRegistry()
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &FactService{
		store:    store,
		registry: registry,
		metrics:  metrics,
		logger:   logger.WithField("module", "FACTS"),
		apiKey:   apiKey,
		close:    func() error { return nil },
	}
}

// SetService replaces the package service
func SetService(svc *FactService) {
	factService = svc
}

// GetService returns the package service, or nil before Init
func GetService() *FactService {
	return factService
}

// Close releases the underlying store
func (s *FactService) Close() error {
	return s.close()
}

/** ---- AUTH ---- */

// RequiresKey reports whether requests must carry the API key
func (s *FactService) RequiresKey() bool {
	return s.apiKey != ""
}

// Authenticate compares key against the configured API key
func (s *FactService) Authenticate(key string) bool {
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) == 1
}

/** ---- FACTS ---- */

// Registry returns the categories facts may belong to
func (s *FactService) Registry() *facts.Registry {
	return s.registry
}

// ListFacts returns the facts for a category filter
func (s *FactService) ListFacts(ctx context.Context, q facts.Query) (list []facts.Fact, err error) {
	defer func(start time.Time) { s.metrics.Observe("list", start, err) }(time.Now())

	q = q.Normalize()
	ctx, span := observability.StartSpan(ctx, "facts.list", attribute.String("fact.category", q.Category))
	defer func() { observability.EndSpan(span, err) }()

	if !s.registry.IsFilter(q.Category) {
		return nil, fmt.Errorf("%w: %q", facts.ErrUnknownCategory, q.Category)
	}

	return s.store.ListFacts(ctx, q)
}

// GetFact returns a single fact
func (s *FactService) GetFact(ctx context.Context, id int64) (f *facts.Fact, err error) {
	defer func(start time.Time) { s.metrics.Observe("get", start, err) }(time.Now())

	ctx, span := observability.StartSpan(ctx, "facts.get", attribute.Int64("fact.id", id))
	defer func() { observability.EndSpan(span, err) }()

	return s.store.GetFact(ctx, id)
}

// CreateFact validates the draft and stores it
func (s *FactService) CreateFact(ctx context.Context, d facts.Draft) (f *facts.Fact, err error) {
	defer func(start time.Time) { s.metrics.Observe("create", start, err) }(time.Now())

	ctx, span := observability.StartSpan(ctx, "facts.create", attribute.String("fact.category", d.Category))
	defer func() { observability.EndSpan(span, err) }()

	if err := facts.ValidateDraft(d); err != nil {
		return nil, err
	}
	if !s.registry.Has(d.Category) {
		return nil, fmt.Errorf("%w: %q", facts.ErrUnknownCategory, d.Category)
	}

	f, err = s.store.CreateFact(ctx, d)
	if err != nil {
		s.logger.WithError(err).Error("failed to create fact")
		return nil, err
	}

	s.metrics.FactCreated()
	s.logger.WithFields(logrus.Fields{"id": f.ID, "category": f.Category}).Info("fact created")
	return f, nil
}

// UpdateVotes sets one counter of a fact
func (s *FactService) UpdateVotes(ctx context.Context, id int64, counter facts.Counter, value int) (f *facts.Fact, err error) {
	defer func(start time.Time) { s.metrics.Observe("vote", start, err) }(time.Now())

	ctx, span := observability.StartSpan(ctx, "facts.vote",
		attribute.Int64("fact.id", id),
		attribute.String("fact.counter", string(counter)),
	)
	defer func() { observability.EndSpan(span, err) }()

	if !counter.Valid() {
		return nil, fmt.Errorf("%w: %q", facts.ErrInvalidCounter, counter)
	}
	if value < 0 {
		return nil, fmt.Errorf("%w: %d", facts.ErrInvalidVotes, value)
	}

	f, err = s.store.UpdateVotes(ctx, id, counter, value)
	if err != nil {
		if !errors.Is(err, facts.ErrFactNotFound) {
			s.logger.WithError(err).WithField("id", id).Error("failed to update votes")
		}
		return nil, err
	}

	s.metrics.VoteAccepted(string(counter))
	return f, nil
}
