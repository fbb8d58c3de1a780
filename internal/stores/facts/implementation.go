package facts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethanbaker/til/pkg/facts"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store handles storage and retrieval of facts using MySQL
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore creates a new fact store with MySQL connection
func NewStore(databaseURL string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return NewStoreFromDB(db)
}

// NewStoreFromDB wraps an existing gorm connection and migrates the facts table
func NewStoreFromDB(db *gorm.DB) (*Store, error) {
	store := &Store{db: db, now: time.Now}

	// Auto-migrate tables
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// migrate creates or updates the required database tables
func (s *Store) migrate() error {
	return s.db.AutoMigrate(&FactModel{})
}

// ListFacts returns facts for the query, best voted first
func (s *Store) ListFacts(ctx context.Context, q facts.Query) ([]facts.Fact, error) {
	q = q.Normalize()

	tx := s.db.WithContext(ctx).Model(&FactModel{})
	if q.Filtered() {
		tx = tx.Where("category = ?", q.Category)
	}

	var models []FactModel
	err := tx.
		Order(clause.OrderByColumn{Column: clause.Column{Name: string(facts.VotesInteresting)}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Limit(q.Limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list facts: %w", err)
	}

	list := make([]facts.Fact, len(models))
	for i, model := range models {
		list[i] = *model.toFact()
	}

	return list, nil
}

// GetFact retrieves a fact by id
func (s *Store) GetFact(ctx context.Context, id int64) (*facts.Fact, error) {
	var model FactModel
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", facts.ErrFactNotFound, id)
		}
		return nil, fmt.Errorf("failed to get fact: %w", err)
	}

	return model.toFact(), nil
}

// CreateFact inserts a new fact with zeroed counters and returns the stored row
func (s *Store) CreateFact(ctx context.Context, d facts.Draft) (*facts.Fact, error) {
	model := &FactModel{
		Text:      d.Text,
		Source:    d.Source,
		Category:  d.Category,
		CreatedIn: s.now().Year(),
	}

	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create fact: %w", err)
	}

	return model.toFact(), nil
}

// UpdateVotes sets a single counter on a fact and returns the updated row
func (s *Store) UpdateVotes(ctx context.Context, id int64, counter facts.Counter, value int) (*facts.Fact, error) {
	if !counter.Valid() {
		return nil, fmt.Errorf("%w: %q", facts.ErrInvalidCounter, counter)
	}
	if value < 0 {
		return nil, facts.ErrInvalidVotes
	}

	var model FactModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Check existence first, MySQL reports zero affected rows for unchanged values
		if err := tx.First(&model, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&model).Update(string(counter), value).Error; err != nil {
			return err
		}

		return tx.First(&model, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", facts.ErrFactNotFound, id)
		}
		return nil, fmt.Errorf("failed to update votes: %w", err)
	}

	return model.toFact(), nil
}

// Seed inserts facts when the table is empty, keeping their counters and years
func (s *Store) Seed(ctx context.Context, seed []facts.Fact) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&FactModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count facts: %w", err)
	}
	if count > 0 || len(seed) == 0 {
		return nil
	}

	models := make([]FactModel, len(seed))
	for i, f := range seed {
		models[i] = FactModel{
			Text:             f.Text,
			Source:           f.Source,
			Category:         f.Category,
			VotesInteresting: f.VotesInteresting,
			VotesMindBlowing: f.VotesMindBlowing,
			VotesFalse:       f.VotesFalse,
			CreatedIn:        f.CreatedIn,
		}
	}

	if err := s.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("failed to seed facts: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
