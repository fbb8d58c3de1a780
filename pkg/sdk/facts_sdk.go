package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ethanbaker/til/pkg/facts"
)

/** Facts */

// ListFacts returns the facts matching the query, ordered by votesInteresting descending
func (c *Client) ListFacts(ctx context.Context, q facts.Query) ([]facts.Fact, error) {
	q = q.Normalize()

	params := url.Values{}
	params.Set("category", q.Category)
	params.Set("limit", strconv.Itoa(q.Limit))

	var resp ApiResponse[FactListResponse]
	if err := c.doJSON(ctx, http.MethodGet, "/api/facts?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list facts: %w", err)
	}

	return resp.Data.Facts, nil
}

// GetFact returns a single fact by id
func (c *Client) GetFact(ctx context.Context, id int64) (*facts.Fact, error) {
	var resp ApiResponse[facts.Fact]
	path := fmt.Sprintf("/api/facts/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get fact %d: %w", id, err)
	}

	return &resp.Data, nil
}

// CreateFact inserts a new fact and returns the stored record
func (c *Client) CreateFact(ctx context.Context, draft facts.Draft) (*facts.Fact, error) {
	var resp ApiResponse[facts.Fact]
	if err := c.doJSON(ctx, http.MethodPost, "/api/facts", CreateFactRequest(draft), &resp); err != nil {
		return nil, fmt.Errorf("failed to create fact: %w", err)
	}

	return &resp.Data, nil
}

// UpdateVotes sets one counter of a fact to value and returns the stored record
func (c *Client) UpdateVotes(ctx context.Context, id int64, counter facts.Counter, value int) (*facts.Fact, error) {
	var resp ApiResponse[facts.Fact]
	path := fmt.Sprintf("/api/facts/%d", id)
	if err := c.doJSON(ctx, http.MethodPatch, path, NewUpdateFactRequest(counter, value), &resp); err != nil {
		return nil, fmt.Errorf("failed to update %s on fact %d: %w", counter, id, err)
	}

	return &resp.Data, nil
}

/** Categories */

// Categories returns the server's category registry in display order
func (c *Client) Categories(ctx context.Context) ([]facts.Category, error) {
	var resp ApiResponse[[]facts.Category]
	if err := c.doJSON(ctx, http.MethodGet, "/api/categories", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return resp.Data, nil
}

/** Health */

// Health checks that the API is reachable
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/health", nil, nil)
}
