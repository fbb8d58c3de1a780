package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethanbaker/til/pkg/facts"
	"github.com/ethanbaker/til/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Remote is the fact store the controller reads from and writes to. Both the
// HTTP SDK client and the local stores satisfy it
type Remote interface {
	ListFacts(ctx context.Context, q facts.Query) ([]facts.Fact, error)
	CreateFact(ctx context.Context, d facts.Draft) (*facts.Fact, error)
	UpdateVotes(ctx context.Context, id int64, counter facts.Counter, value int) (*facts.Fact, error)
}

// Options configure a Controller
type Options struct {
	Registry        *facts.Registry // Defaults to facts.DefaultRegistry()
	Policy          *FailurePolicy  // Defaults to DefaultFailurePolicy()
	Logger          *logrus.Logger  // Defaults to a discarding logger
	InitialCategory string          // Defaults to "all"
}

// Controller owns the application state. Every mutation happens under one lock
// and is published to subscribers as a Snapshot. Remote calls are made without
// holding the lock
type Controller struct {
	remote   Remote
	registry *facts.Registry
	policy   FailurePolicy
	logger   *logrus.Entry

	mu      sync.Mutex
	state   Snapshot
	loads   int // In-flight loads
	subs    map[int]chan Snapshot
	nextSub int
}

// New creates a controller for the given remote
func New(remote Remote, opts Options) *Controller {
	if opts.Registry == nil {
		opts.Registry = facts.DefaultRegistry()
	}
	policy := DefaultFailurePolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	if opts.InitialCategory == "" {
		opts.InitialCategory = facts.AllCategories
	}

	return &Controller{
		remote:   remote,
		registry: opts.Registry,
		policy:   policy,
		logger:   opts.Logger.WithField("module", "STATE"),
		state: Snapshot{
			Facts:           []facts.Fact{},
			CurrentCategory: opts.InitialCategory,
			Updating:        map[int64]bool{},
		},
		subs: make(map[int]chan Snapshot),
	}
}

// Registry returns the category registry the controller validates against
func (c *Controller) Registry() *facts.Registry {
	return c.registry
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe returns a channel that always holds the latest snapshot. Slow readers
// skip intermediate versions but never see an older one after a newer one. The
// returned function unsubscribes and closes the channel
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 1)
	ch <- c.state.clone()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}

	return ch, cancel
}

// commitLocked bumps the version and publishes the state. c.mu must be held
func (c *Controller) commitLocked() {
	c.state.Version++

	for _, ch := range c.subs {
		// Drop the stale value so the buffer only ever holds the newest one
		select {
		case <-ch:
		default:
		}
		ch <- c.state.clone()
	}
}

// mutate applies fn to the state and publishes the result
func (c *Controller) mutate(fn func(s *Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn(&c.state)
	c.commitLocked()
}

/** Loading */

// Start performs the initial load of the starting category
func (c *Controller) Start(ctx context.Context) error {
	return c.Reload(ctx)
}

// Reload reloads the current category
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	category := c.state.CurrentCategory
	c.mu.Unlock()

	return c.LoadFacts(ctx, category)
}

// SetCategory switches the active filter and reloads the list for it
func (c *Controller) SetCategory(ctx context.Context, category string) error {
	if !c.registry.IsFilter(category) {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, category)
	}

	c.mutate(func(s *Snapshot) {
		s.CurrentCategory = category
	})

	return c.LoadFacts(ctx, category)
}

// LoadFacts replaces the local list with the store's facts for category ("all" or
// a registered name). On failure the previous list is kept and a notice is set.
// Earlier loads are not cancelled, the last one to complete wins
func (c *Controller) LoadFacts(ctx context.Context, category string) error {
	if !c.registry.IsFilter(category) {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, category)
	}

	c.mutate(func(s *Snapshot) {
		c.loads++
		s.IsLoading = true
	})

	list, err := c.remote.ListFacts(ctx, facts.NewQuery(category))

	c.mutate(func(s *Snapshot) {
		c.loads--
		s.IsLoading = c.loads > 0

		if err != nil {
			s.Notice = &Notice{Kind: NoticeLoadFailed, Message: LoadFailedMessage, Err: err}
			return
		}
		s.Facts = dedupe(list)
	})

	if err != nil {
		c.logger.WithError(err).WithField("category", category).Error("failed to load facts")
		return fmt.Errorf("failed to load facts for %q: %w", category, err)
	}

	c.logger.WithFields(logrus.Fields{"category": category, "count": len(list)}).Debug("loaded facts")
	return nil
}

/** Form */

// ToggleForm flips the form's visibility
func (c *Controller) ToggleForm() {
	c.mutate(func(s *Snapshot) {
		s.ShowForm = !s.ShowForm
	})
}

// SetShowForm sets the form's visibility
func (c *Controller) SetShowForm(show bool) {
	c.mutate(func(s *Snapshot) {
		s.ShowForm = show
	})
}

// UpdateForm replaces the draft. Input is ignored while a submission is uploading
func (c *Controller) UpdateForm(d facts.Draft) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.IsUploading {
		return false
	}

	c.state.Form = d
	c.commitLocked()
	return true
}

// DismissNotice clears the current notice
func (c *Controller) DismissNotice() {
	c.mutate(func(s *Snapshot) {
		s.Notice = nil
	})
}

/** Submission */

// Submit validates the current draft and creates it in the store. Invalid drafts
// return a *facts.ValidationError and leave the state untouched apart from the
// notice. On success the new fact is prepended, the form is cleared and closed
func (c *Controller) Submit(ctx context.Context) (*facts.Fact, error) {
	c.mu.Lock()
	if c.state.IsUploading {
		c.mu.Unlock()
		return nil, ErrBusy
	}

	draft := c.state.Form
	if err := facts.ValidateDraft(draft); err != nil {
		if c.policy.SurfaceValidation {
			c.state.Notice = &Notice{Kind: NoticeValidation, Message: err.Error(), Err: err}
			c.commitLocked()
		}
		c.mu.Unlock()
		return nil, err
	}

	c.state.IsUploading = true
	c.commitLocked()
	c.mu.Unlock()

	created, err := c.remote.CreateFact(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.IsUploading = false
	if err != nil {
		c.logger.WithError(err).Error("failed to create fact")
		if c.policy.SurfaceWriteErrors {
			c.state.Notice = &Notice{Kind: NoticeSubmitFailed, Message: "Could not share the fact", Err: err}
		}
		c.commitLocked()
		return nil, fmt.Errorf("failed to submit fact: %w", err)
	}

	list := make([]facts.Fact, 0, len(c.state.Facts)+1)
	list = append(list, *created)
	for _, f := range c.state.Facts {
		if f.ID != created.ID {
			list = append(list, f)
		}
	}
	c.state.Facts = list
	c.state.Form = facts.Draft{}
	c.state.ShowForm = false
	c.commitLocked()

	c.logger.WithField("id", created.ID).Info("fact created")
	return created, nil
}

/** Voting */

// Vote sets counter on the fact to its local value plus one and merges the
// record the store returns. A second vote on a fact already updating is rejected
func (c *Controller) Vote(ctx context.Context, id int64, counter facts.Counter) (*facts.Fact, error) {
	if !counter.Valid() {
		return nil, fmt.Errorf("%w: %q", facts.ErrInvalidCounter, counter)
	}

	c.mu.Lock()
	i := c.state.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: id %d", facts.ErrFactNotFound, id)
	}
	if c.state.Updating[id] {
		c.mu.Unlock()
		return nil, ErrBusy
	}

	next := c.state.Facts[i].Votes(counter) + 1
	c.state.Updating[id] = true
	c.commitLocked()
	c.mu.Unlock()

	updated, err := c.remote.UpdateVotes(ctx, id, counter, next)

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.state.Updating, id)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{"id": id, "counter": counter}).Error("failed to vote")
		if c.policy.SurfaceWriteErrors {
			c.state.Notice = &Notice{Kind: NoticeVoteFailed, Message: "Could not record the vote", Err: err}
		}
		c.commitLocked()
		return nil, fmt.Errorf("failed to vote on fact %d: %w", id, err)
	}

	// The list may have been reloaded while the vote was in flight
	if j := c.state.indexOf(updated.ID); j >= 0 {
		list := make([]facts.Fact, len(c.state.Facts))
		copy(list, c.state.Facts)
		list[j] = *updated
		c.state.Facts = list
	}
	c.commitLocked()

	return updated, nil
}
