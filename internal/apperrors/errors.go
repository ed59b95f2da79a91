package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("operation conflicts with resource state")

// Posting errors.
var (
	// ErrInvalidAmount indicates a line amount that is zero or negative.
	ErrInvalidAmount = errors.New("line amount must be positive")

	// ErrUnknownAccount indicates a line referencing an account that does not
	// exist in the GL account registry.
	ErrUnknownAccount = errors.New("unknown GL account")

	// ErrAlreadyReversed indicates an attempt to reverse an entry that already
	// has a reversing entry posted against it.
	ErrAlreadyReversed = errors.New("entry already reversed")

	// ErrSettledLinesPresent indicates an attempt to reverse an entry whose
	// lines participate in settlement allocations, without opting into
	// cascading un-settlement.
	ErrSettledLinesPresent = errors.New("entry has settled lines")
)

// Settlement errors.
var (
	// ErrIncompatibleAccounts indicates two lines that cannot settle each
	// other (different account, or same side of the account).
	ErrIncompatibleAccounts = errors.New("lines are not compatible for settlement")

	// ErrExceedsRemaining indicates a requested allocation amount larger than
	// the remaining unsettled amount on either line.
	ErrExceedsRemaining = errors.New("requested amount exceeds remaining unsettled amount")

	// ErrAlreadySettled indicates a line with no remaining amount to allocate.
	ErrAlreadySettled = errors.New("line is fully settled")
)

// UnbalancedEntryError is returned when an entry's debit and credit totals
// differ. It carries both totals so the caller can log the exact imbalance;
// an unbalanced entry is a programming error in the collaborator that built
// the lines, not a transient condition.
type UnbalancedEntryError struct {
	DebitTotal  int64
	CreditTotal int64
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("entry does not balance: debit total is %d, credit total is %d (minor units)", e.DebitTotal, e.CreditTotal)
}

// AppError wraps storage-layer failures with a code and message so they stay
// distinct from the domain errors above. Posting paths roll back on AppError,
// never leaving a partial entry visible.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
