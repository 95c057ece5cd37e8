package dialogue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	none, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, none)

	session := NewSession(1, FlowProfileSetup)
	session.Fields["weight"] = "70"
	require.NoError(t, store.Put(ctx, session))

	// Mutating the original must not leak into the store.
	session.Fields["weight"] = "999"

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "70", got.Fields["weight"])

	require.NoError(t, store.Delete(ctx, 1))
	gone, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSessionSurvivesJSONRoundTrip(t *testing.T) {
	session := NewSession(7, FlowLogWorkout)
	session.Step = StepWorkoutMinutes
	session.Fields["activity_type"] = "Бег"

	data, err := json.Marshal(session)
	require.NoError(t, err)

	var restored Session
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, session, &restored)
}

func TestNewSessionInitialSteps(t *testing.T) {
	assert.Equal(t, StepWeight, NewSession(1, FlowProfileSetup).Step)
	assert.Equal(t, StepFoodWeight, NewSession(1, FlowLogFood).Step)
	assert.Equal(t, StepActivityType, NewSession(1, FlowLogWorkout).Step)
}
