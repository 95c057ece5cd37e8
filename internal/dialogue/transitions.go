package dialogue

import (
	"strconv"
	"strings"

	"github.com/olegbarsukov/fitness-helper/internal/catalog"
	"github.com/olegbarsukov/fitness-helper/internal/domain"
)

// Result is the outcome of feeding one message into a session. On a
// validation failure Session is the input session unchanged and Prompt
// carries the error plus the re-issued question. When Completed is set the
// session holds every collected field and the flow's side effects may run.
type Result struct {
	Session          *Session
	Prompt           string
	ActivityKeyboard bool
	Completed        bool
}

func reprompt(s *Session, message string) Result {
	return Result{Session: s, Prompt: message}
}

func advanced(s *Session, prompt string) Result {
	return Result{Session: s, Prompt: prompt}
}

func completed(s *Session) Result {
	return Result{Session: s, Completed: true}
}

// Advance applies one user message to the session and returns the next
// session state. It is a pure transition: the input session is never
// mutated, and no I/O happens here.
func Advance(s *Session, input string, cat *catalog.Catalog) Result {
	input = strings.TrimSpace(input)
	switch s.Flow {
	case FlowProfileSetup:
		return advanceProfileSetup(s, input, cat)
	case FlowLogFood:
		return advanceLogFood(s, input)
	case FlowLogWorkout:
		return advanceLogWorkout(s, input, cat)
	}
	return reprompt(s, MsgNeedStart)
}

func advanceProfileSetup(s *Session, input string, cat *catalog.Catalog) Result {
	switch s.Step {
	case StepWeight:
		weight, err := strconv.Atoi(input)
		if err != nil {
			return reprompt(s, MsgWeightFormat)
		}
		if weight < domain.MinWeightKg || weight > domain.MaxWeightKg {
			return reprompt(s, MsgWeightRange)
		}
		next := s.Clone()
		next.Fields[fieldWeight] = input
		next.Step = StepHeight
		return advanced(next, PromptHeight)

	case StepHeight:
		height, err := strconv.Atoi(input)
		if err != nil {
			return reprompt(s, MsgHeightFormat)
		}
		if height < domain.MinHeightCm || height > domain.MaxHeightCm {
			return reprompt(s, MsgHeightRange)
		}
		next := s.Clone()
		next.Fields[fieldHeight] = input
		next.Step = StepAge
		return advanced(next, PromptAge)

	case StepAge:
		age, err := strconv.Atoi(input)
		if err != nil {
			return reprompt(s, MsgAgeFormat)
		}
		if age < domain.MinAgeYears || age > domain.MaxAgeYears {
			return reprompt(s, MsgAgeRange)
		}
		next := s.Clone()
		next.Fields[fieldAge] = input
		next.Step = StepActivityMinutes
		return advanced(next, PromptActivityMinutes)

	case StepActivityMinutes:
		minutes, err := strconv.Atoi(input)
		if err != nil {
			return reprompt(s, MsgMinutesFormat)
		}
		if minutes < domain.MinActivityMinutes || minutes > domain.MaxActivityMinutes {
			return reprompt(s, MsgMinutesRange)
		}
		next := s.Clone()
		next.Fields[fieldActivityMinutes] = input
		// The one branch in the model: the activity-type step only exists
		// for users who reported daily activity.
		if minutes > 0 {
			next.Step = StepActivityType
			result := advanced(next, PromptActivityType)
			result.ActivityKeyboard = true
			return result
		}
		next.Step = StepCity
		return advanced(next, PromptCity)

	case StepActivityType:
		if _, ok := cat.Coefficient(input); !ok {
			return reprompt(s, MsgUnknownActivity)
		}
		next := s.Clone()
		next.Fields[fieldActivityType] = input
		next.Step = StepCity
		return advanced(next, PromptCity)

	case StepCity:
		if input == "" {
			return reprompt(s, MsgCityEmpty)
		}
		next := s.Clone()
		next.Fields[fieldCity] = input
		return completed(next)
	}
	return reprompt(s, MsgNeedStart)
}

func advanceLogFood(s *Session, input string) Result {
	weight, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return reprompt(s, MsgFoodWeightFormat)
	}
	if weight <= 0 {
		return reprompt(s, MsgFoodWeightRange)
	}
	next := s.Clone()
	next.Fields[fieldFoodWeight] = input
	return completed(next)
}

func advanceLogWorkout(s *Session, input string, cat *catalog.Catalog) Result {
	switch s.Step {
	case StepActivityType:
		if _, ok := cat.Coefficient(input); !ok {
			return reprompt(s, MsgUnknownActivity)
		}
		next := s.Clone()
		next.Fields[fieldActivityType] = input
		next.Step = StepWorkoutMinutes
		return advanced(next, PromptWorkoutMinutes)

	case StepWorkoutMinutes:
		minutes, err := strconv.Atoi(input)
		if err != nil {
			return reprompt(s, MsgMinutesFormat)
		}
		if minutes < domain.MinActivityMinutes || minutes > domain.MaxActivityMinutes {
			return reprompt(s, MsgMinutesRange)
		}
		next := s.Clone()
		next.Fields[fieldWorkoutMinutes] = input
		return completed(next)
	}
	return reprompt(s, MsgNeedStart)
}
