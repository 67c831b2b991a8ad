package tasklist

import (
	"context"
	"testing"

	"github.com/hay-kot/tasklist/internal/core/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	t.Run("missing slot starts empty", func(t *testing.T) {
		f := newFixture(t)

		assert.Empty(t, f.ctl.Tasks())
		assert.Equal(t, task.FilterAll, f.ctl.Filter())
		assert.Zero(t, f.rec.writes)
	})

	t.Run("malformed slot starts empty", func(t *testing.T) {
		f := newFixture(t)
		f.store.SetRaw(StorageKey(), []byte(`{not json`))

		f.ctl.Initialize(context.Background())

		assert.Empty(t, f.ctl.Tasks())
		assert.Equal(t, "No tasks yet!", f.ctl.Render().Placeholder)
	})

	t.Run("wrong shape starts empty", func(t *testing.T) {
		f := newFixture(t)
		f.store.SetRaw(StorageKey(), []byte(`{"id": 1}`))

		f.ctl.Initialize(context.Background())

		assert.Empty(t, f.ctl.Tasks())
	})

	t.Run("loads stored list in order", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t,
			task.Task{ID: 3, Text: "C"},
			task.Task{ID: 2, Text: "B", Completed: true},
			task.Task{ID: 1, Text: "A"},
		)

		assert.Equal(t, []string{"C", "B", "A"}, texts(f.ctl.Tasks()))
		assert.Equal(t, 2, f.ctl.RemainingCount())
	})

	t.Run("drops blank and duplicate entries", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t,
			task.Task{ID: 3, Text: "C"},
			task.Task{ID: 2, Text: "   "},
			task.Task{ID: 3, Text: "dup"},
			task.Task{ID: 1, Text: "A"},
		)

		assert.Equal(t, []string{"C", "A"}, texts(f.ctl.Tasks()))
	})

	t.Run("drops entries without a positive id", func(t *testing.T) {
		f := newFixture(t)
		f.store.SetRaw(StorageKey(), []byte(`[{"text":"no id"},{"id":-4,"text":"negative"},{"id":2,"text":"kept"}]`))

		f.ctl.Initialize(context.Background())

		assert.Equal(t, []string{"kept"}, texts(f.ctl.Tasks()))
		require.NoError(t, ValidateTasks(f.ctl.Tasks()))
	})

	t.Run("filter resets to all", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.ctl.SetFilter(context.Background(), "completed"))

		f.ctl.Initialize(context.Background())

		assert.Equal(t, task.FilterAll, f.ctl.Filter())
	})
}

func TestAddTask(t *testing.T) {
	ctx := context.Background()

	t.Run("prepends trimmed active task and persists", func(t *testing.T) {
		f := newFixture(t)

		first := f.add(t, "A")
		second := f.add(t, "  B  ")

		assert.Equal(t, "B", second.Text)
		assert.False(t, second.Completed)
		assert.Greater(t, second.ID, first.ID)
		assert.Equal(t, []string{"B", "A"}, texts(f.ctl.Tasks()))
		assert.Equal(t, f.ctl.Tasks(), f.stored(t))
		assert.Equal(t, 2, f.rec.writes)
	})

	t.Run("empty and whitespace text are ignored", func(t *testing.T) {
		f := newFixture(t)

		for _, text := range []string{"", "   ", "\t\n"} {
			_, added, err := f.ctl.AddTask(ctx, text)
			require.NoError(t, err)
			assert.False(t, added)
		}

		assert.Empty(t, f.ctl.Tasks())
		assert.Zero(t, f.rec.writes)
	})

	t.Run("each add grows the list by one", func(t *testing.T) {
		f := newFixture(t)

		for i, text := range []string{"a", "b", "c", "d"} {
			f.add(t, text)
			assert.Len(t, f.ctl.Tasks(), i+1)
			assert.Equal(t, text, f.ctl.Tasks()[0].Text)
		}
	})

	t.Run("ids stay unique within one millisecond", func(t *testing.T) {
		f := newFixture(t)
		f.clock.frozen = true

		a := f.add(t, "A")
		b := f.add(t, "B")
		c := f.add(t, "C")

		assert.Equal(t, a.ID+1, b.ID)
		assert.Equal(t, b.ID+1, c.ID)
	})

	t.Run("ids stay above stored ids when the clock is behind", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, task.Task{ID: 9_999_999_999_999, Text: "future"})

		created := f.add(t, "now")

		assert.Equal(t, int64(10_000_000_000_000), created.ID)
	})

	t.Run("write failure leaves list unchanged", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, "A")
		f.rec.failSet = errDiskFull

		_, added, err := f.ctl.AddTask(ctx, "B")

		require.ErrorIs(t, err, errDiskFull)
		assert.False(t, added)
		assert.Equal(t, []string{"A"}, texts(f.ctl.Tasks()))
		assert.Equal(t, []string{"A"}, texts(f.stored(t)))
	})
}

func TestToggleComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle twice restores state", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")

		require.NoError(t, f.ctl.ToggleComplete(ctx, a.ID))
		assert.True(t, f.ctl.Tasks()[0].Completed)
		assert.True(t, f.stored(t)[0].Completed)

		require.NoError(t, f.ctl.ToggleComplete(ctx, a.ID))
		assert.False(t, f.ctl.Tasks()[0].Completed)
		assert.False(t, f.stored(t)[0].Completed)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, "A")
		f.rec.writes = 0

		require.NoError(t, f.ctl.ToggleComplete(ctx, 12345))

		assert.False(t, f.ctl.Tasks()[0].Completed)
		assert.Zero(t, f.rec.writes)
	})

	t.Run("write failure rolls back", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		f.rec.failSet = errDiskFull

		err := f.ctl.ToggleComplete(ctx, a.ID)

		require.ErrorIs(t, err, errDiskFull)
		assert.False(t, f.ctl.Tasks()[0].Completed)
		assert.Equal(t, 1, f.ctl.RemainingCount())
	})
}

func TestEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("commit replaces trimmed text", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		f.rec.writes = 0

		seed, ok, err := f.ctl.BeginEdit(ctx, a.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "A", seed)
		assert.True(t, f.ctl.Render().Rows[0].Editing)

		changed, err := f.ctl.CommitEdit(ctx, "  A2  ")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "A2", f.ctl.Tasks()[0].Text)
		assert.Equal(t, "A2", f.stored(t)[0].Text)
		assert.Equal(t, 1, f.rec.writes)
		assert.False(t, f.ctl.Render().Rows[0].Editing)
	})

	t.Run("empty commit reverts without writing", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		f.rec.writes = 0

		_, _, err := f.ctl.BeginEdit(ctx, a.ID)
		require.NoError(t, err)

		changed, err := f.ctl.CommitEdit(ctx, "")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, "A", f.ctl.Tasks()[0].Text)
		assert.Zero(t, f.rec.writes)

		_, _, editing := f.ctl.Editing()
		assert.False(t, editing)
	})

	t.Run("unchanged text does not write", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		f.rec.writes = 0

		_, _, err := f.ctl.BeginEdit(ctx, a.ID)
		require.NoError(t, err)
		changed, err := f.ctl.CommitEdit(ctx, " A ")

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Zero(t, f.rec.writes)
	})

	t.Run("commit without open edit is a no-op", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, "A")

		changed, err := f.ctl.CommitEdit(ctx, "B")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, "A", f.ctl.Tasks()[0].Text)
	})

	t.Run("begin on unknown id", func(t *testing.T) {
		f := newFixture(t)

		_, ok, err := f.ctl.BeginEdit(ctx, 99)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("begin on another row commits the open draft", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		b := f.add(t, "B")

		_, _, err := f.ctl.BeginEdit(ctx, a.ID)
		require.NoError(t, err)
		f.ctl.UpdateDraft("A edited")

		seed, ok, err := f.ctl.BeginEdit(ctx, b.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "B", seed)

		assert.Equal(t, []string{"B", "A edited"}, texts(f.stored(t)))
		id, _, _ := f.ctl.Editing()
		assert.Equal(t, b.ID, id)
	})

	t.Run("begin on the same row keeps the draft", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")

		_, _, err := f.ctl.BeginEdit(ctx, a.ID)
		require.NoError(t, err)
		f.ctl.UpdateDraft("draft")

		seed, ok, err := f.ctl.BeginEdit(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "draft", seed)
	})

	t.Run("write failure keeps old text and the draft open", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		_, _, err := f.ctl.BeginEdit(ctx, a.ID)
		require.NoError(t, err)
		f.rec.failSet = errDiskFull

		changed, err := f.ctl.CommitEdit(ctx, "B")

		require.ErrorIs(t, err, errDiskFull)
		assert.False(t, changed)
		assert.Equal(t, "A", f.ctl.Tasks()[0].Text)
		id, draft, editing := f.ctl.Editing()
		require.True(t, editing)
		assert.Equal(t, a.ID, id)
		assert.Equal(t, "B", draft)

		f.rec.failSet = nil
		changed, err = f.ctl.CommitEdit(ctx, draft)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{"B"}, texts(f.stored(t)))
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("removes and persists", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		f.add(t, "B")

		require.NoError(t, f.ctl.DeleteTask(ctx, a.ID))

		assert.Equal(t, []string{"B"}, texts(f.ctl.Tasks()))
		assert.Equal(t, []string{"B"}, texts(f.stored(t)))
	})

	t.Run("second delete is a no-op", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		require.NoError(t, f.ctl.DeleteTask(ctx, a.ID))
		f.rec.writes = 0

		require.NoError(t, f.ctl.DeleteTask(ctx, a.ID))

		assert.Empty(t, f.ctl.Tasks())
		assert.Zero(t, f.rec.writes)
	})

	t.Run("deleting the edited row commits then deletes", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		f.rec.writes = 0

		_, _, err := f.ctl.BeginEdit(ctx, a.ID)
		require.NoError(t, err)
		f.ctl.UpdateDraft("A2")

		require.NoError(t, f.ctl.DeleteTask(ctx, a.ID))

		assert.Empty(t, f.ctl.Tasks())
		assert.Equal(t, 2, f.rec.writes)
		_, _, editing := f.ctl.Editing()
		assert.False(t, editing)
	})

	t.Run("deleting another row commits the open draft", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		b := f.add(t, "B")

		_, _, err := f.ctl.BeginEdit(ctx, a.ID)
		require.NoError(t, err)
		f.ctl.UpdateDraft("A2")

		require.NoError(t, f.ctl.DeleteTask(ctx, b.ID))

		assert.Equal(t, []string{"A2"}, texts(f.stored(t)))
	})

	t.Run("write failure rolls back", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		f.rec.failSet = errDiskFull

		require.ErrorIs(t, f.ctl.DeleteTask(ctx, a.ID), errDiskFull)
		assert.Len(t, f.ctl.Tasks(), 1)
	})
}

func TestClearCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("removes only completed tasks", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t,
			task.Task{ID: 4, Text: "D", Completed: true},
			task.Task{ID: 3, Text: "C"},
			task.Task{ID: 2, Text: "B", Completed: true},
			task.Task{ID: 1, Text: "A"},
		)

		require.NoError(t, f.ctl.ClearCompleted(ctx))

		assert.Equal(t, []task.Task{{ID: 3, Text: "C"}, {ID: 1, Text: "A"}}, f.ctl.Tasks())
		assert.Equal(t, f.ctl.Tasks(), f.stored(t))
	})

	t.Run("writes even when nothing is completed", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, "A")
		f.rec.writes = 0

		require.NoError(t, f.ctl.ClearCompleted(ctx))

		assert.Len(t, f.ctl.Tasks(), 1)
		assert.Equal(t, 1, f.rec.writes)
	})

	t.Run("empty list persists an empty array", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.ctl.ClearCompleted(ctx))

		stored := f.stored(t)
		assert.NotNil(t, stored)
		assert.Empty(t, stored)
	})
}

func TestSetFilter(t *testing.T) {
	ctx := context.Background()

	t.Run("valid names", func(t *testing.T) {
		f := newFixture(t)
		for _, name := range []string{"active", "completed", "all"} {
			require.NoError(t, f.ctl.SetFilter(ctx, name))
			assert.Equal(t, task.Filter(name), f.ctl.Filter())
		}
		assert.Zero(t, f.rec.writes)
	})

	t.Run("invalid name fails and keeps filter", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.ctl.SetFilter(ctx, "active"))

		err := f.ctl.SetFilter(ctx, "archived")

		require.ErrorIs(t, err, task.ErrInvalidFilter)
		assert.Equal(t, task.FilterActive, f.ctl.Filter())
	})
}

func TestReload(t *testing.T) {
	ctx := context.Background()

	t.Run("picks up external changes", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, "A")

		require.NoError(t, f.store.Set(ctx, StorageKey(), []task.Task{{ID: 1, Text: "external"}}))
		f.ctl.Reload(ctx)

		assert.Equal(t, []string{"external"}, texts(f.ctl.Tasks()))
	})

	t.Run("external delete of the slot clears the list", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, "A")

		require.NoError(t, f.store.Delete(ctx, StorageKey()))
		f.ctl.Reload(ctx)

		assert.Empty(t, f.ctl.Tasks())
	})

	t.Run("drops edit whose task vanished", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		_, _, err := f.ctl.BeginEdit(ctx, a.ID)
		require.NoError(t, err)

		require.NoError(t, f.store.Set(ctx, StorageKey(), []task.Task{}))
		f.ctl.Reload(ctx)

		_, _, editing := f.ctl.Editing()
		assert.False(t, editing)
	})

	t.Run("keeps edit whose task survived", func(t *testing.T) {
		f := newFixture(t)
		a := f.add(t, "A")
		_, _, err := f.ctl.BeginEdit(ctx, a.ID)
		require.NoError(t, err)

		f.ctl.Reload(ctx)

		id, _, editing := f.ctl.Editing()
		assert.True(t, editing)
		assert.Equal(t, a.ID, id)
	})

	t.Run("keeps the filter", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.ctl.SetFilter(ctx, "completed"))

		f.ctl.Reload(ctx)

		assert.Equal(t, task.FilterCompleted, f.ctl.Filter())
	})
}

func TestKey_MatchesStorageKey(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "tasklist:tasks", f.ctl.Key())
	assert.Equal(t, StorageKey(), f.ctl.Key())
}

func TestPersist_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.add(t, "A")
	f.add(t, "B")
	f.add(t, "C")
	require.NoError(t, f.ctl.ToggleComplete(ctx, a.ID))
	require.NoError(t, f.ctl.Persist(ctx))

	reloaded := New(f.store)
	reloaded.Initialize(ctx)

	assert.Equal(t, f.ctl.Tasks(), reloaded.Tasks())
}

func TestTasks_ReturnsCopy(t *testing.T) {
	f := newFixture(t)
	f.add(t, "A")

	got := f.ctl.Tasks()
	got[0].Text = "mutated"

	assert.Equal(t, "A", f.ctl.Tasks()[0].Text)
}
