package seed

import (
	"testing"

	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStages_Template(t *testing.T) {
	stages, err := DefaultStages()
	require.NoError(t, err)
	require.Len(t, stages, 8)

	for i, s := range stages {
		assert.Equal(t, i+1, s.Number)
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Tasks)
		for pos, task := range s.Tasks {
			assert.Equal(t, pos, task.Position)
		}
	}

	first := stages[0]
	assert.Equal(t, domain.StageComplete, first.Status)
	assert.Equal(t, 100, first.Progress)
	assert.Equal(t, 5, first.CompletedTasks())

	assert.Equal(t, domain.StageTesting, stages[6].Status)
}

func TestDefaultStages_Totals(t *testing.T) {
	stages, err := DefaultStages()
	require.NoError(t, err)

	hours, tasks, done := 0, 0, 0
	for _, s := range stages {
		hours += s.Hours
		tasks += len(s.Tasks)
		done += s.CompletedTasks()
	}
	assert.Equal(t, 776, hours)
	assert.Equal(t, 51, tasks)
	assert.Equal(t, 23, done)
}

func TestDefaultStages_ReturnsFreshValues(t *testing.T) {
	a, err := DefaultStages()
	require.NoError(t, err)
	a[0].Name = "mutated"

	b, err := DefaultStages()
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", b[0].Name)
}
