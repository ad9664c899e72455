package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks rejected input. The operation made no change.
	ErrValidation = errors.New("validation failed")

	// ErrAgentUserInvalid is returned when an agent references a missing user or one without the Agent role.
	ErrAgentUserInvalid = fmt.Errorf("%w: user must exist and hold the %s role", ErrValidation, RoleAgent)

	// ErrEmailTaken is returned when a user email is already registered.
	ErrEmailTaken = fmt.Errorf("%w: email already in use", ErrValidation)
)
