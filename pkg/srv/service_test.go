package srv

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeService struct {
	name     string
	rec      *recorder
	startErr error
}

func (f *fakeService) Start(ctx context.Context) error {
	f.rec.add("start " + f.name)
	return f.startErr
}

func (f *fakeService) Shutdown(ctx context.Context) error {
	f.rec.add("stop " + f.name)
	return nil
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, &fakeService{name: "a", rec: rec}, &fakeService{name: "b", rec: rec})
	}()

	require.Eventually(t, func() bool { return len(rec.list()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}

	calls := rec.list()
	assert.Equal(t, []string{"stop b", "stop a"}, calls[2:])
}

func TestRun_StartFailure(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")

	err := Run(context.Background(), &fakeService{name: "a", rec: rec, startErr: boom})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, rec.list(), "stop a")
}
