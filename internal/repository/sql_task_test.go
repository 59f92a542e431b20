package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/alexanderramin/stagetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createStage(t *testing.T, repo *SQLStageRepo, name string) int64 {
	t.Helper()
	s := testutil.NewTestStage(name)
	require.NoError(t, repo.Create(context.Background(), s))
	return s.ID
}

// tasksOfStage filters ListAll down to one stage, keeping its order.
func tasksOfStage(ctx context.Context, repo *SQLTaskRepo, stageID int64) ([]*domain.Task, error) {
	all, err := repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var tasks []*domain.Task
	for _, task := range all {
		if task.StageID == stageID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func TestTaskRepo_AddAppendsPositions(t *testing.T) {
	db := testutil.NewTestDB(t)
	stages := NewSQLStageRepo(db)
	repo := NewSQLTaskRepo(db)
	ctx := context.Background()

	stageID := createStage(t, stages, "Build")
	other := createStage(t, stages, "Ship")

	var positions []int
	for _, text := range []string{"a", "b", "c"} {
		task := testutil.NewTestTask(stageID, text)
		require.NoError(t, repo.Add(ctx, task))
		assert.NotZero(t, task.ID)
		assert.False(t, task.Completed)
		positions = append(positions, task.Position)
	}
	assert.Equal(t, []int{0, 1, 2}, positions)

	first := testutil.NewTestTask(other, "x")
	require.NoError(t, repo.Add(ctx, first))
	assert.Equal(t, 0, first.Position, "positions are scoped to the owning stage")
}

func TestTaskRepo_AddAfterDeleteKeepsPositionsDistinct(t *testing.T) {
	db := testutil.NewTestDB(t)
	stages := NewSQLStageRepo(db)
	repo := NewSQLTaskRepo(db)
	ctx := context.Background()

	stageID := createStage(t, stages, "Build")
	a := testutil.NewTestTask(stageID, "a")
	b := testutil.NewTestTask(stageID, "b")
	require.NoError(t, repo.Add(ctx, a))
	require.NoError(t, repo.Add(ctx, b))

	_, err := repo.Delete(ctx, a.ID)
	require.NoError(t, err)

	c := testutil.NewTestTask(stageID, "c")
	require.NoError(t, repo.Add(ctx, c))
	assert.Equal(t, 2, c.Position)

	tasks, err := tasksOfStage(ctx, repo, stageID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "b", tasks[0].Text)
	assert.Equal(t, 1, tasks[0].Position, "siblings are not renumbered after a delete")
	assert.Equal(t, "c", tasks[1].Text)
}

func TestTaskRepo_AddUnknownStageFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLTaskRepo(db)

	err := repo.Add(context.Background(), testutil.NewTestTask(999, "orphan"))
	assert.Error(t, err)
}

func TestTaskRepo_ListOrdersByPositionThenID(t *testing.T) {
	db := testutil.NewTestDB(t)
	stages := NewSQLStageRepo(db)
	repo := NewSQLTaskRepo(db)
	ctx := context.Background()

	stageID := createStage(t, stages, "Build")
	require.NoError(t, repo.Insert(ctx, testutil.NewTestTask(stageID, "late", testutil.WithPosition(5))))
	require.NoError(t, repo.Insert(ctx, testutil.NewTestTask(stageID, "tie1", testutil.WithPosition(1))))
	require.NoError(t, repo.Insert(ctx, testutil.NewTestTask(stageID, "tie2", testutil.WithPosition(1), testutil.WithCompleted(true))))

	tasks, err := tasksOfStage(ctx, repo, stageID)
	require.NoError(t, err)
	var texts []string
	for _, task := range tasks {
		texts = append(texts, task.Text)
	}
	assert.Equal(t, []string{"tie1", "tie2", "late"}, texts)
	assert.True(t, tasks[1].Completed)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTaskRepo_ToggleTwiceRestores(t *testing.T) {
	db := testutil.NewTestDB(t)
	stages := NewSQLStageRepo(db)
	repo := NewSQLTaskRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask(createStage(t, stages, "Build"), "flip")
	require.NoError(t, repo.Add(ctx, task))

	changes, completed, err := repo.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changes)
	assert.True(t, completed)

	_, completed, err = repo.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, completed)
}

func TestTaskRepo_ToggleUnknownID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLTaskRepo(db)

	changes, completed, err := repo.Toggle(context.Background(), 77)
	require.NoError(t, err)
	assert.Zero(t, changes)
	assert.False(t, completed)
}

func TestTaskRepo_UpdateTextLeavesOtherFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	stages := NewSQLStageRepo(db)
	repo := NewSQLTaskRepo(db)
	ctx := context.Background()

	stageID := createStage(t, stages, "Build")
	task := testutil.NewTestTask(stageID, "before", testutil.WithCompleted(true), testutil.WithPosition(3))
	require.NoError(t, repo.Insert(ctx, task))

	changes, err := repo.UpdateText(ctx, task.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, int64(1), changes)

	tasks, err := tasksOfStage(ctx, repo, stageID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "after", tasks[0].Text)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, 3, tasks[0].Position)

	changes, err = repo.UpdateText(ctx, 4040, "nothing")
	require.NoError(t, err)
	assert.Zero(t, changes)
}

func TestTaskRepo_DeleteUnknownID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLTaskRepo(db)

	changes, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, changes)
}

func TestTaskRepo_DeleteByStageAndAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	stages := NewSQLStageRepo(db)
	repo := NewSQLTaskRepo(db)
	ctx := context.Background()

	s1 := createStage(t, stages, "one")
	s2 := createStage(t, stages, "two")
	for _, text := range []string{"a", "b"} {
		require.NoError(t, repo.Add(ctx, testutil.NewTestTask(s1, text)))
	}
	require.NoError(t, repo.Add(ctx, testutil.NewTestTask(s2, "c")))

	n, err := repo.DeleteByStage(ctx, s1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, s2, all[0].StageID)

	require.NoError(t, repo.DeleteAll(ctx))
	all, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
