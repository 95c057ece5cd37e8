package dialogue

import (
	"context"
	"strconv"
	"sync"
)

// Flow identifies one of the three fixed multi-step dialogues.
type Flow string

const (
	FlowProfileSetup Flow = "profile_setup"
	FlowLogFood      Flow = "log_food"
	FlowLogWorkout   Flow = "log_workout"
)

// Step names the input a flow is currently waiting for.
type Step string

const (
	StepWeight          Step = "waiting_for_weight"
	StepHeight          Step = "waiting_for_height"
	StepAge             Step = "waiting_for_age"
	StepActivityMinutes Step = "waiting_for_activity_minutes"
	StepActivityType    Step = "waiting_for_activity_type"
	StepCity            Step = "waiting_for_city"
	StepFoodWeight      Step = "waiting_for_food_weight"
	StepWorkoutMinutes  Step = "waiting_for_workout_minutes"
)

// Field keys accumulated in Session.Fields.
const (
	fieldWeight          = "weight"
	fieldHeight          = "height"
	fieldAge             = "age"
	fieldActivityMinutes = "activity_minutes"
	fieldActivityType    = "activity_type"
	fieldCity            = "city"
	fieldProductName     = "product_name"
	fieldFoodWeight      = "food_weight"
	fieldWorkoutMinutes  = "workout_minutes"
)

// Session is the transient state of one active flow for one user. Values in
// Fields are stored in their validated string form so sessions survive a JSON
// round trip unchanged.
type Session struct {
	UserID int64             `json:"user_id"`
	Flow   Flow              `json:"flow"`
	Step   Step              `json:"step"`
	Fields map[string]string `json:"fields"`
}

// NewSession creates a session positioned at the first step of the flow.
func NewSession(userID int64, flow Flow) *Session {
	s := &Session{
		UserID: userID,
		Flow:   flow,
		Fields: make(map[string]string),
	}
	switch flow {
	case FlowProfileSetup:
		s.Step = StepWeight
	case FlowLogFood:
		s.Step = StepFoodWeight
	case FlowLogWorkout:
		s.Step = StepActivityType
	}
	return s
}

// Clone returns a deep copy so transitions never mutate the stored session.
func (s *Session) Clone() *Session {
	fields := make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	return &Session{
		UserID: s.UserID,
		Flow:   s.Flow,
		Step:   s.Step,
		Fields: fields,
	}
}

func (s *Session) fieldInt(key string) int {
	v, _ := strconv.Atoi(s.Fields[key])
	return v
}

func (s *Session) fieldFloat(key string) float64 {
	v, _ := strconv.ParseFloat(s.Fields[key], 64)
	return v
}

// SessionStore keeps active sessions keyed by user id. Get returns (nil, nil)
// when no flow is active for the user.
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Delete(ctx context.Context, userID int64) error
}

// MemoryStore is the in-process session store. Sessions live until the flow
// completes; there is no expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (m *MemoryStore) Get(ctx context.Context, userID int64) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[userID]
	if !ok {
		return nil, nil
	}
	return session.Clone(), nil
}

func (m *MemoryStore) Put(ctx context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.UserID] = session.Clone()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}
