package service

import (
	"testing"

	"github.com/alexanderramin/stagetrack/internal/db"
	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/alexanderramin/stagetrack/internal/repository"
	"github.com/alexanderramin/stagetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// testServices wires every service to one in-memory database.
type testServices struct {
	db       *db.DB
	stages   StageService
	tasks    TaskService
	stats    StatsService
	transfer TransferService
	schema   SchemaService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	return newTestServicesWithUoW(t, testutil.NewTestDB(t), nil)
}

func newTestServicesWithUoW(t *testing.T, database *db.DB, uow db.UnitOfWork) *testServices {
	t.Helper()
	if uow == nil {
		uow = testutil.NewTestUoW(database)
	}
	stageRepo := repository.NewSQLStageRepo(database)
	taskRepo := repository.NewSQLTaskRepo(database)
	return &testServices{
		db:       database,
		stages:   NewStageService(stageRepo, taskRepo, uow),
		tasks:    NewTaskService(taskRepo),
		stats:    NewStatsService(repository.NewSQLStatsRepo(database)),
		transfer: NewTransferService(stageRepo, taskRepo, uow),
		schema:   NewSchemaService(uow),
	}
}

// requireDenseNumbers asserts the stage numbers are exactly 1..N in order.
func requireDenseNumbers(t *testing.T, stages []*domain.Stage) {
	t.Helper()
	for i, s := range stages {
		require.Equal(t, i+1, s.Number, "stage %q", s.Name)
	}
}

func stageNames(stages []*domain.Stage) []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name
	}
	return names
}

func TestJoinStageTasks_SortsIndependentOfInputOrder(t *testing.T) {
	stages := []*domain.Stage{
		{ID: 3, Number: 2, Name: "b"},
		{ID: 1, Number: 1, Name: "a"},
		{ID: 2, Number: 2, Name: "b-earlier-id"},
	}
	tasks := []*domain.Task{
		{ID: 9, StageID: 1, Position: 1, Text: "second"},
		{ID: 7, StageID: 1, Position: 0, Text: "first"},
		{ID: 8, StageID: 1, Position: 1, Text: "second-earlier-id"},
		{ID: 5, StageID: 42, Position: 0, Text: "orphan"},
	}

	got := joinStageTasks(stages, tasks)

	assert.Equal(t, []string{"a", "b-earlier-id", "b"}, stageNames(got))
	require.Len(t, got[0].Tasks, 3)
	assert.Equal(t, "first", got[0].Tasks[0].Text)
	assert.Equal(t, "second-earlier-id", got[0].Tasks[1].Text)
	assert.Equal(t, "second", got[0].Tasks[2].Text)
	assert.NotNil(t, got[1].Tasks)
	assert.Empty(t, got[1].Tasks)
}
