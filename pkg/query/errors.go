package query

import (
	"errors"
	"fmt"

	"github.com/majorfi/shootdesk/pkg/utils"
)

// ErrValidation matches every ValidationError through errors.Is.
var ErrValidation = errors.New("invalid search query")

/**************************************************************************************************
** ValidationError reports a failed mode precondition. No query is built and nothing is recorded.
**************************************************************************************************/
type ValidationError struct {
	Mode   utils.TMode
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s search: %s", e.Mode, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(mode utils.TMode, reason string) error {
	return &ValidationError{Mode: mode, Reason: reason}
}
