package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStagePatch_IsEmpty(t *testing.T) {
	assert.True(t, StagePatch{}.IsEmpty())

	progress := 40
	assert.False(t, StagePatch{Progress: &progress}.IsEmpty())

	name := ""
	assert.False(t, StagePatch{Name: &name}.IsEmpty(), "an explicit empty string is still a field")
}

func TestStage_CompletedTasks(t *testing.T) {
	s := &Stage{Tasks: []*Task{
		{Text: "a", Completed: true},
		{Text: "b"},
		{Text: "c", Completed: true},
	}}
	assert.Equal(t, 2, s.CompletedTasks())
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("updating stage: %w", NewValidationError("", "no fields to update"))

	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "no fields to update", ve.Error())
}

func TestValidationError_FieldPrefix(t *testing.T) {
	err := NewValidationError("name", "is required")
	assert.Equal(t, "name: is required", err.Error())
}

func TestDefaultHelpers(t *testing.T) {
	assert.Equal(t, "🚀", NonEmptyOr("🚀", DefaultStageIcon))
	assert.Equal(t, DefaultStageIcon, NonEmptyOr("", DefaultStageIcon))
	assert.Equal(t, 5, NonEmptyOr(0, 5))

	seven := 7
	assert.Equal(t, 7, ValueOr(&seven, 1))
	assert.Equal(t, 1, ValueOr[int](nil, 1))

	zero := 0
	assert.Equal(t, 0, ValueOr(&zero, 3), "an explicit zero is kept")
}
