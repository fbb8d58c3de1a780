package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethanbaker/til/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (r *countingReloader) Reload(ctx context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestSchedulerReloads(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"failures keep the schedule", errors.New("store down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reloader := &countingReloader{err: tt.err}

			s, err := New("@every 1s", reloader, time.Second, utils.NewNopLogger())
			require.NoError(t, err)

			s.Start()
			defer s.Stop()

			assert.Eventually(t, func() bool { return reloader.calls.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)
		})
	}
}

func TestSchedulerInvalidSpec(t *testing.T) {
	_, err := New("every now and then", &countingReloader{}, 0, utils.NewNopLogger())
	assert.Error(t, err)
}
