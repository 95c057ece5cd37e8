package dialogue

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/olegbarsukov/fitness-helper/internal/apperrors"
	"github.com/olegbarsukov/fitness-helper/internal/domain"
	"github.com/olegbarsukov/fitness-helper/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu       sync.Mutex
	profiles map[int64]*domain.UserProfile
}

func newMemRepo() *memRepo {
	return &memRepo{profiles: make(map[int64]*domain.UserProfile)}
}

func (r *memRepo) Get(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile.Clone(), nil
}

func (r *memRepo) Put(ctx context.Context, profile *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile.Clone()
	return nil
}

func (r *memRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.profiles[userID]
	return ok, nil
}

type fakeWeather struct {
	temp float64
	ok   bool
	err  error
}

func (w fakeWeather) CurrentTemperature(ctx context.Context, city string) (float64, bool, error) {
	return w.temp, w.ok, w.err
}

type fakeFood struct {
	product *domain.Product
	err     error
}

func (f fakeFood) FindProduct(ctx context.Context, name string) (*domain.Product, error) {
	return f.product, f.err
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func completeProfile(userID int64) *domain.UserProfile {
	return &domain.UserProfile{
		UserID:          userID,
		WeightKg:        intPtr(80),
		HeightCm:        intPtr(180),
		AgeYears:        intPtr(35),
		ActivityMinutes: intPtr(0),
		City:            strPtr("London"),
		WaterGoalMl:     2400,
		CalorieGoal:     1950,
	}
}

func newTestEngine(t *testing.T, repo *memRepo, weather domain.WeatherService, food domain.FoodService) *Engine {
	t.Helper()
	return NewEngine(NewMemoryStore(), repo, weather, food, testCatalog(t))
}

func runProfileSetup(t *testing.T, engine *Engine, userID int64, inputs []string) Reply {
	t.Helper()
	ctx := context.Background()

	reply, err := engine.StartProfileSetup(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, PromptWeight, reply.Text)

	for _, input := range inputs {
		var handled bool
		reply, handled, err = engine.HandleInput(ctx, userID, input)
		require.NoError(t, err)
		require.True(t, handled)
	}
	return reply
}

func TestProfileSetupRequiresStart(t *testing.T) {
	engine := newTestEngine(t, newMemRepo(), fakeWeather{}, fakeFood{})

	reply, err := engine.StartProfileSetup(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, MsgNeedStart, reply.Text)
}

func TestProfileSetupComputesGoals(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	engine := newTestEngine(t, repo, fakeWeather{temp: 30, ok: true}, fakeFood{})

	require.NoError(t, engine.Register(ctx, 1))
	reply := runProfileSetup(t, engine, 1, []string{"70", "175", "30", "60", "Бег", "London"})
	assert.Equal(t, MsgProfileSaved, reply.Text)

	profile, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	// 70*30 + 500*2 + 1000 hot-weather bonus.
	assert.Equal(t, 4100, profile.WaterGoalMl)
	// round(700 + 1093.75 - 150 + 10*1*70)
	assert.Equal(t, 2344, profile.CalorieGoal)
	assert.Equal(t, "Бег", *profile.ActivityType)
	assert.True(t, profile.Complete())

	// The flow is done: further text is not consumed by any session.
	_, handled, err := engine.HandleInput(ctx, 1, "hello")
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestProfileSetupWithoutTemperature(t *testing.T) {
	tests := []struct {
		name    string
		weather fakeWeather
	}{
		{name: "temperature unavailable", weather: fakeWeather{ok: false}},
		{name: "auth failure degrades", weather: fakeWeather{err: apperrors.NewAuthError("weather", "Invalid API key")}},
		{name: "connectivity failure degrades", weather: fakeWeather{err: apperrors.NewConnectivityError(fmt.Errorf("refused"), "weather")}},
		{name: "mild temperature no bonus", weather: fakeWeather{temp: 20, ok: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := newMemRepo()
			engine := newTestEngine(t, repo, tt.weather, fakeFood{})

			require.NoError(t, engine.Register(ctx, 1))
			reply := runProfileSetup(t, engine, 1, []string{"70", "175", "30", "0", "London"})
			assert.Equal(t, MsgProfileSaved, reply.Text)

			profile, err := repo.Get(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, 2100, profile.WaterGoalMl)
			assert.Equal(t, 1644, profile.CalorieGoal)
		})
	}
}

func TestLogFoodPreconditions(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	engine := newTestEngine(t, repo, fakeWeather{}, fakeFood{})

	reply, err := engine.StartLogFood(ctx, 1, "banana")
	require.NoError(t, err)
	assert.Equal(t, MsgNeedStart, reply.Text)

	require.NoError(t, engine.Register(ctx, 1))
	reply, err = engine.StartLogFood(ctx, 1, "banana")
	require.NoError(t, err)
	assert.Equal(t, MsgProfileIncomplete, reply.Text)

	require.NoError(t, repo.Put(ctx, completeProfile(1)))
	reply, err = engine.StartLogFood(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, MsgFoodUsage, reply.Text)
}

func TestLogFoodAddsCalories(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	engine := newTestEngine(t, repo, fakeWeather{},
		fakeFood{product: &domain.Product{Name: "Banana", CaloriesPer100g: 52}})

	require.NoError(t, repo.Put(ctx, completeProfile(1)))

	reply, err := engine.StartLogFood(ctx, 1, "banana")
	require.NoError(t, err)
	require.Equal(t, PromptFoodWeight, reply.Text)

	reply, handled, err := engine.HandleInput(ctx, 1, "150")
	require.NoError(t, err)
	require.True(t, handled)
	assert.Equal(t, "Записано 78 ккал.", reply.Text)

	profile, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 78, profile.LoggedCalories)

	_, handled, err = engine.HandleInput(ctx, 1, "150")
	require.NoError(t, err)
	assert.False(t, handled, "session must be cleared after completion")
}

func TestLogFoodLookupFailureAbortsFlow(t *testing.T) {
	tests := []struct {
		name string
		food fakeFood
	}{
		{name: "no product matched", food: fakeFood{}},
		{name: "connectivity failure", food: fakeFood{err: apperrors.NewConnectivityError(fmt.Errorf("refused"), "food")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := newMemRepo()
			engine := newTestEngine(t, repo, fakeWeather{}, tt.food)

			require.NoError(t, repo.Put(ctx, completeProfile(1)))

			_, err := engine.StartLogFood(ctx, 1, "mystery")
			require.NoError(t, err)

			reply, handled, err := engine.HandleInput(ctx, 1, "150")
			require.NoError(t, err)
			require.True(t, handled)
			assert.Equal(t, MsgFoodLookupFailed, reply.Text)

			// No partial commit and no dangling session.
			profile, err := repo.Get(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, 0, profile.LoggedCalories)

			_, handled, err = engine.HandleInput(ctx, 1, "150")
			require.NoError(t, err)
			assert.False(t, handled)
		})
	}
}

func TestLogWorkoutUpdatesTotals(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	engine := newTestEngine(t, repo, fakeWeather{}, fakeFood{})

	require.NoError(t, repo.Put(ctx, completeProfile(1)))

	reply, err := engine.StartLogWorkout(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, PromptActivityType, reply.Text)
	assert.True(t, reply.ActivityKeyboard)

	_, handled, err := engine.HandleInput(ctx, 1, "Плавание")
	require.NoError(t, err)
	require.True(t, handled)

	reply, handled, err = engine.HandleInput(ctx, 1, "45")
	require.NoError(t, err)
	require.True(t, handled)
	assert.Equal(t, "На тренировке \"Плавание\" вы сожгли 480 ккал. Дополнительно выпейте 300 мл воды.", reply.Text)

	profile, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 480, profile.BurnedCalories)
	// The workout raises the goal; logged water stays untouched.
	assert.Equal(t, 2400+300, profile.WaterGoalMl)
	assert.Equal(t, 0, profile.LoggedWaterMl)
}

func TestLogWater(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	engine := newTestEngine(t, repo, fakeWeather{}, fakeFood{})

	require.NoError(t, repo.Put(ctx, completeProfile(1)))

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{name: "missing argument", arg: "", want: MsgWaterUsage},
		{name: "not a number", arg: "many", want: MsgWaterFormat},
		{name: "negative amount", arg: "-100", want: MsgWaterRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := engine.LogWater(ctx, 1, tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply.Text)
		})
	}

	reply, err := engine.LogWater(ctx, 1, "500")
	require.NoError(t, err)
	assert.Equal(t, "Осталось выпить 1900 мл воды.", reply.Text)

	reply, err = engine.LogWater(ctx, 1, "1900")
	require.NoError(t, err)
	assert.Equal(t, MsgWaterGoalReached, reply.Text)

	profile, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2400, profile.LoggedWaterMl)
}

func TestLogWaterConcurrent(t *testing.T) {
	ctx := context.Background()
	repo, err := storage.NewFileRepository(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	engine := NewEngine(NewMemoryStore(), repo, fakeWeather{}, fakeFood{}, testCatalog(t))

	require.NoError(t, repo.Put(ctx, completeProfile(1)))

	// Updates arrive on one goroutine per message, so overlapping commands
	// from the same user must not lose increments between a read and its
	// write-back.
	const calls = 200
	var wg sync.WaitGroup
	wg.Add(calls)
	for i := 0; i < calls; i++ {
		go func() {
			defer wg.Done()
			_, err := engine.LogWater(ctx, 1, "10")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	profile, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, calls*10, profile.LoggedWaterMl)
}

func TestProgressGuards(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	engine := newTestEngine(t, repo, fakeWeather{}, fakeFood{})

	_, guard, err := engine.Progress(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, guard)
	assert.Equal(t, MsgNeedStart, guard.Text)

	// The guidance is the same no matter which required field is missing,
	// and checking progress never mutates the profile.
	missing := []func(p *domain.UserProfile){
		func(p *domain.UserProfile) { p.WeightKg = nil },
		func(p *domain.UserProfile) { p.HeightCm = nil },
		func(p *domain.UserProfile) { p.AgeYears = nil },
		func(p *domain.UserProfile) { p.ActivityMinutes = nil },
		func(p *domain.UserProfile) { p.City = nil },
	}
	for _, clear := range missing {
		profile := completeProfile(1)
		clear(profile)
		require.NoError(t, repo.Put(ctx, profile))

		_, guard, err := engine.Progress(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, guard)
		assert.Equal(t, MsgProfileIncomplete, guard.Text)

		stored, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, profile, stored)
	}

	require.NoError(t, repo.Put(ctx, completeProfile(1)))
	profile, guard, err := engine.Progress(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, guard)
	require.NotNil(t, profile)
	assert.Equal(t, 2400, profile.WaterGoalMl)
}

func TestHandleInputWithoutSession(t *testing.T) {
	engine := newTestEngine(t, newMemRepo(), fakeWeather{}, fakeFood{})

	_, handled, err := engine.HandleInput(context.Background(), 1, "70")
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestRegisterIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	engine := newTestEngine(t, repo, fakeWeather{}, fakeFood{})

	require.NoError(t, repo.Put(ctx, completeProfile(1)))
	require.NoError(t, engine.Register(ctx, 1))

	profile, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, profile.Complete(), "register must not overwrite an existing profile")
}
