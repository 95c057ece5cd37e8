package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/olegbarsukov/fitness-helper/internal/apperrors"
	"github.com/olegbarsukov/fitness-helper/internal/catalog"
	"github.com/olegbarsukov/fitness-helper/internal/domain"
	"github.com/olegbarsukov/fitness-helper/internal/goals"
	"github.com/olegbarsukov/fitness-helper/internal/logger"
)

// Reply is what the transport should say back to the user.
type Reply struct {
	Text             string
	ActivityKeyboard bool
}

// Engine drives the three dialogue flows: it owns session bookkeeping,
// checks command preconditions, and runs the completion side effects
// (gateway lookups, goal calculation, persistence).
type Engine struct {
	sessions SessionStore
	profiles domain.ProfileRepository
	weather  domain.WeatherService
	food     domain.FoodService
	catalog  *catalog.Catalog

	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

func NewEngine(
	sessions SessionStore,
	profiles domain.ProfileRepository,
	weather domain.WeatherService,
	food domain.FoodService,
	cat *catalog.Catalog,
) *Engine {
	return &Engine{
		sessions:  sessions,
		profiles:  profiles,
		weather:   weather,
		food:      food,
		catalog:   cat,
		userLocks: make(map[int64]*sync.Mutex),
	}
}

// lockUser serializes read-modify-write sequences on one user's profile.
// Update handlers run in parallel goroutines, so thread-safe repository
// calls alone do not prevent lost updates between a Get and its Put. The
// returned func releases the lock.
func (e *Engine) lockUser(userID int64) func() {
	e.mu.Lock()
	lock, ok := e.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.userLocks[userID] = lock
	}
	e.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Register creates an empty profile for the user if none exists yet.
func (e *Engine) Register(ctx context.Context, userID int64) error {
	unlock := e.lockUser(userID)
	defer unlock()

	exists, err := e.profiles.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return e.profiles.Put(ctx, &domain.UserProfile{UserID: userID})
}

// StartProfileSetup begins the profile dialogue. The user must have run
// /start before; completeness is not required here.
func (e *Engine) StartProfileSetup(ctx context.Context, userID int64) (Reply, error) {
	exists, err := e.profiles.Exists(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	if !exists {
		return Reply{Text: MsgNeedStart}, nil
	}

	session := NewSession(userID, FlowProfileSetup)
	if err := e.sessions.Put(ctx, session); err != nil {
		return Reply{}, err
	}
	return Reply{Text: PromptWeight}, nil
}

// StartLogFood begins the food dialogue for the named product.
func (e *Engine) StartLogFood(ctx context.Context, userID int64, productName string) (Reply, error) {
	if _, guard, err := e.requireCompleteProfile(ctx, userID); err != nil || guard != nil {
		return guardReply(guard), err
	}

	productName = strings.TrimSpace(productName)
	if productName == "" {
		return Reply{Text: MsgFoodUsage}, nil
	}

	session := NewSession(userID, FlowLogFood)
	session.Fields[fieldProductName] = productName
	if err := e.sessions.Put(ctx, session); err != nil {
		return Reply{}, err
	}
	return Reply{Text: PromptFoodWeight}, nil
}

// StartLogWorkout begins the workout dialogue.
func (e *Engine) StartLogWorkout(ctx context.Context, userID int64) (Reply, error) {
	if _, guard, err := e.requireCompleteProfile(ctx, userID); err != nil || guard != nil {
		return guardReply(guard), err
	}

	session := NewSession(userID, FlowLogWorkout)
	if err := e.sessions.Put(ctx, session); err != nil {
		return Reply{}, err
	}
	return Reply{Text: PromptActivityType, ActivityKeyboard: true}, nil
}

// LogWater records drunk water directly, without a dialogue.
func (e *Engine) LogWater(ctx context.Context, userID int64, arg string) (Reply, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	profile, guard, err := e.requireCompleteProfile(ctx, userID)
	if err != nil || guard != nil {
		return guardReply(guard), err
	}

	arg = strings.TrimSpace(arg)
	if arg == "" {
		return Reply{Text: MsgWaterUsage}, nil
	}
	ml, err := strconv.Atoi(arg)
	if err != nil {
		return Reply{Text: MsgWaterFormat}, nil
	}
	if ml < 0 {
		return Reply{Text: MsgWaterRange}, nil
	}

	profile.LoggedWaterMl += ml
	if err := e.profiles.Put(ctx, profile); err != nil {
		return Reply{}, err
	}

	left := profile.WaterGoalMl - profile.LoggedWaterMl
	if left > 0 {
		return Reply{Text: fmt.Sprintf(MsgWaterLeft, left)}, nil
	}
	return Reply{Text: MsgWaterGoalReached}, nil
}

// Progress returns the user's profile for reporting, or a guard reply when
// the profile is missing or incomplete. Never mutates state.
func (e *Engine) Progress(ctx context.Context, userID int64) (*domain.UserProfile, *Reply, error) {
	profile, guard, err := e.requireCompleteProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if guard != nil {
		return nil, guard, nil
	}
	return profile, nil, nil
}

// HandleInput feeds free text into the user's active flow. handled is false
// when no flow is active.
func (e *Engine) HandleInput(ctx context.Context, userID int64, text string) (Reply, bool, error) {
	session, err := e.sessions.Get(ctx, userID)
	if err != nil {
		return Reply{}, false, err
	}
	if session == nil {
		return Reply{}, false, nil
	}
	logger.Debug("Dialogue input", "user_id", userID, "flow", session.Flow, "step", session.Step)

	result := Advance(session, text, e.catalog)
	if !result.Completed {
		// Store even on a re-prompt so TTL-based stores refresh the session.
		if err := e.sessions.Put(ctx, result.Session); err != nil {
			return Reply{}, true, err
		}
		return Reply{Text: result.Prompt, ActivityKeyboard: result.ActivityKeyboard}, true, nil
	}

	reply, err := e.complete(ctx, result.Session)
	return reply, true, err
}

func (e *Engine) complete(ctx context.Context, session *Session) (Reply, error) {
	switch session.Flow {
	case FlowProfileSetup:
		return e.completeProfileSetup(ctx, session)
	case FlowLogFood:
		return e.completeLogFood(ctx, session)
	case FlowLogWorkout:
		return e.completeLogWorkout(ctx, session)
	}
	return Reply{}, fmt.Errorf("unknown flow %q", session.Flow)
}

func (e *Engine) completeProfileSetup(ctx context.Context, session *Session) (Reply, error) {
	weight := session.fieldInt(fieldWeight)
	height := session.fieldInt(fieldHeight)
	age := session.fieldInt(fieldAge)
	minutes := session.fieldInt(fieldActivityMinutes)
	city := session.Fields[fieldCity]

	// A failed weather lookup degrades to "temperature unknown"; profile
	// setup still completes. The lookup happens before the profile lock so
	// a slow upstream does not hold it.
	var temperature *float64
	temp, ok, err := e.weather.CurrentTemperature(ctx, city)
	switch {
	case errors.Is(err, apperrors.ErrWeatherAuth):
		logger.Error("Weather API authentication failed", logFields(err)...)
	case err != nil:
		logger.Warn("Weather lookup failed", logFields(err)...)
	case ok:
		temperature = &temp
	}

	unlock := e.lockUser(session.UserID)
	defer unlock()

	profile, err := e.profiles.Get(ctx, session.UserID)
	if err != nil {
		return Reply{}, err
	}

	profile.WeightKg = &weight
	profile.HeightCm = &height
	profile.AgeYears = &age
	profile.ActivityMinutes = &minutes
	profile.City = &city
	if activityType, ok := session.Fields[fieldActivityType]; ok {
		profile.ActivityType = &activityType
	}

	var coefficient float64
	if minutes > 0 && profile.ActivityType != nil {
		coefficient, _ = e.catalog.Coefficient(*profile.ActivityType)
	}

	profile.WaterGoalMl = goals.WaterGoalMl(weight, minutes, temperature)
	profile.CalorieGoal = goals.CalorieGoal(weight, height, age, minutes, coefficient)

	if err := e.profiles.Put(ctx, profile); err != nil {
		return Reply{}, err
	}
	if err := e.sessions.Delete(ctx, session.UserID); err != nil {
		return Reply{}, err
	}
	return Reply{Text: MsgProfileSaved}, nil
}

func (e *Engine) completeLogFood(ctx context.Context, session *Session) (Reply, error) {
	productName := session.Fields[fieldProductName]
	weight := session.fieldFloat(fieldFoodWeight)

	product, err := e.food.FindProduct(ctx, productName)
	if err != nil {
		logger.Warn("Food lookup failed", logFields(err)...)
		product = nil
	}
	if product == nil {
		// Flow-level failure: no partial commit, the user starts over.
		if err := e.sessions.Delete(ctx, session.UserID); err != nil {
			return Reply{}, err
		}
		return Reply{Text: MsgFoodLookupFailed}, nil
	}

	total := goals.FoodCalories(product.CaloriesPer100g, weight)

	unlock := e.lockUser(session.UserID)
	defer unlock()

	profile, err := e.profiles.Get(ctx, session.UserID)
	if err != nil {
		return Reply{}, err
	}
	profile.LoggedCalories += total
	if err := e.profiles.Put(ctx, profile); err != nil {
		return Reply{}, err
	}
	if err := e.sessions.Delete(ctx, session.UserID); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf(MsgFoodLogged, total)}, nil
}

func (e *Engine) completeLogWorkout(ctx context.Context, session *Session) (Reply, error) {
	activityType := session.Fields[fieldActivityType]
	minutes := session.fieldInt(fieldWorkoutMinutes)
	coefficient, _ := e.catalog.Coefficient(activityType)

	unlock := e.lockUser(session.UserID)
	defer unlock()

	profile, err := e.profiles.Get(ctx, session.UserID)
	if err != nil {
		return Reply{}, err
	}

	weight := 0
	if profile.WeightKg != nil {
		weight = *profile.WeightKg
	}

	calories := goals.WorkoutCalories(coefficient, minutes, weight)
	water := goals.WorkoutWaterMl(minutes)
	profile.BurnedCalories += calories
	// The workout raises the day's water goal, not the logged amount.
	profile.WaterGoalMl += water

	if err := e.profiles.Put(ctx, profile); err != nil {
		return Reply{}, err
	}
	if err := e.sessions.Delete(ctx, session.UserID); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf(MsgWorkoutLogged, activityType, calories, water)}, nil
}

// requireCompleteProfile enforces the entry preconditions shared by the
// logging commands: the profile must exist and be complete. A non-nil guard
// reply means the command must abort without side effects.
func (e *Engine) requireCompleteProfile(ctx context.Context, userID int64) (*domain.UserProfile, *Reply, error) {
	profile, err := e.profiles.Get(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return nil, &Reply{Text: MsgNeedStart}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if !profile.Complete() {
		return nil, &Reply{Text: MsgProfileIncomplete}, nil
	}
	return profile, nil, nil
}

func guardReply(guard *Reply) Reply {
	if guard == nil {
		return Reply{}
	}
	return *guard
}

func logFields(err error) []any {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.LogFields()
	}
	return []any{"error", err.Error()}
}
