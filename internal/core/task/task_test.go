package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Task {
	return []Task{
		{ID: 3, Text: "C", Completed: true},
		{ID: 2, Text: "B"},
		{ID: 1, Text: "A", Completed: true},
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    Filter
		wantErr bool
	}{
		{"all", FilterAll, false},
		{"active", FilterActive, false},
		{"completed", FilterCompleted, false},
		{" Active ", FilterActive, false},
		{"done", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	tasks := sample()

	assert.Equal(t, tasks, FilterAll.Apply(tasks))
	assert.Equal(t, []Task{{ID: 2, Text: "B"}}, FilterActive.Apply(tasks))
	assert.Equal(t, []Task{{ID: 3, Text: "C", Completed: true}, {ID: 1, Text: "A", Completed: true}}, FilterCompleted.Apply(tasks))

	active := len(FilterActive.Apply(tasks))
	completed := len(FilterCompleted.Apply(tasks))
	assert.Equal(t, len(tasks), active+completed)
}

func TestFilter_ApplyEmpty(t *testing.T) {
	for _, f := range Filters {
		assert.Empty(t, f.Apply(nil))
	}
}

func TestFilter_EmptyMessage(t *testing.T) {
	assert.Equal(t, "No tasks yet!", FilterAll.EmptyMessage())
	assert.Equal(t, "No active tasks!", FilterActive.EmptyMessage())
	assert.Equal(t, "No completed tasks!", FilterCompleted.EmptyMessage())
}

func TestFilter_Next(t *testing.T) {
	assert.Equal(t, FilterActive, FilterAll.Next())
	assert.Equal(t, FilterCompleted, FilterActive.Next())
	assert.Equal(t, FilterAll, FilterCompleted.Next())
	assert.Equal(t, FilterAll, Filter("bogus").Next())
}

func TestRemainingText(t *testing.T) {
	assert.Equal(t, "0 tasks remaining", RemainingText(0))
	assert.Equal(t, "1 task remaining", RemainingText(1))
	assert.Equal(t, "2 tasks remaining", RemainingText(2))
}

func TestCountActive(t *testing.T) {
	assert.Equal(t, 1, CountActive(sample()))
	assert.Equal(t, 0, CountActive(nil))
}

func TestIndexOfAndMaxID(t *testing.T) {
	tasks := sample()
	assert.Equal(t, 1, IndexOf(tasks, 2))
	assert.Equal(t, -1, IndexOf(tasks, 42))
	assert.Equal(t, int64(3), MaxID(tasks))
	assert.Equal(t, int64(0), MaxID(nil))
}

func TestTask_JSONShape(t *testing.T) {
	data, err := json.Marshal([]Task{{ID: 1700000000000, Text: "Buy milk"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1700000000000,"text":"Buy milk","completed":false}]`, string(data))

	var decoded []Task
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []Task{{ID: 1700000000000, Text: "Buy milk"}}, decoded)
}
