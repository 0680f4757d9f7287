package service

import "errors"

// --- Error Definitions ---
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrIncompletePrerequisite = errors.New("fitness assessment is incomplete; complete onboarding before generating a plan")
	ErrPlanExists             = errors.New("a plan already exists for this week")
	ErrPlanNotFound           = errors.New("no plan found for this week")
	ErrOracle                 = errors.New("model request failed")
	ErrPersistence            = errors.New("failed to save data")
	ErrRetrieval              = errors.New("failed to retrieve plan")
)

// ValidationError carries a client-facing message and matches ErrInvalidInput.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(msg string) error {
	return &ValidationError{Msg: msg}
}
