package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFactMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFactMetrics(reg)

	m.Observe("list", time.Now(), nil)
	m.Observe("list", time.Now(), nil)
	m.Observe("create", time.Now(), errors.New("boom"))
	m.VoteAccepted("votesFalse")
	m.FactCreated()
	m.ObserveHTTP("GET", "/api/facts", 200)
	m.ObserveHTTP("GET", "", 404)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("list", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("create", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Votes.WithLabelValues("votesFalse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Created))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTP.WithLabelValues("GET", "unmatched", "404")))
}

func TestNilFactMetrics(t *testing.T) {
	var m *FactMetrics

	assert.NotPanics(t, func() {
		m.Observe("list", time.Now(), nil)
		m.VoteAccepted("votesInteresting")
		m.FactCreated()
		m.ObserveHTTP("GET", "/", 200)
	})
}
