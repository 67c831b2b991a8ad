package tasklist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hay-kot/tasklist/internal/core/kv"
	"github.com/hay-kot/tasklist/internal/core/task"
	"github.com/hay-kot/tasklist/internal/data/stores"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// recordingKV wraps a kv.KV, counting writes and optionally failing them.
type recordingKV struct {
	kv.KV
	writes  int
	failSet error
}

func (r *recordingKV) Set(ctx context.Context, key string, value any) error {
	if r.failSet != nil {
		return r.failSet
	}
	r.writes++
	return r.KV.Set(ctx, key, value)
}

// fakeClock hands out fixed times, advancing one millisecond per call unless
// frozen.
type fakeClock struct {
	now    time.Time
	frozen bool
}

func (f *fakeClock) Now() time.Time {
	t := f.now
	if !f.frozen {
		f.now = f.now.Add(time.Millisecond)
	}
	return t
}

type fixture struct {
	ctl   *Controller
	store *stores.MemoryKV
	rec   *recordingKV
	clock *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := stores.NewMemoryKV()
	rec := &recordingKV{KV: store}
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}

	ctl := New(rec, WithClock(clock.Now), WithLogger(zerolog.Nop()))
	ctl.Initialize(context.Background())

	return &fixture{ctl: ctl, store: store, rec: rec, clock: clock}
}

// seed writes tasks straight to the slot and reloads the controller.
func (f *fixture) seed(t *testing.T, tasks ...task.Task) {
	t.Helper()
	require.NoError(t, f.store.Set(context.Background(), StorageKey(), tasks))
	f.ctl.Initialize(context.Background())
	f.rec.writes = 0
}

func (f *fixture) stored(t *testing.T) []task.Task {
	t.Helper()
	var tasks []task.Task
	require.NoError(t, f.store.Get(context.Background(), StorageKey(), &tasks))
	return tasks
}

func (f *fixture) add(t *testing.T, text string) task.Task {
	t.Helper()
	created, added, err := f.ctl.AddTask(context.Background(), text)
	require.NoError(t, err)
	require.True(t, added)
	return created
}

func texts(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func rowTexts(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Text
	}
	return out
}
