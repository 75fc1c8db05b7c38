package funnel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes engine failure semantics across operations.
type ErrorCode string

const (
	CodeValidation           ErrorCode = "validation"
	CodeNotFound             ErrorCode = "not_found"
	CodeAlreadyWinner        ErrorCode = "already_winner"
	CodeNotAWinner           ErrorCode = "not_a_winner"
	CodeInvalidChangeTypes   ErrorCode = "invalid_change_types"
	CodeInvalidCount         ErrorCode = "invalid_count"
	CodeUnknownAccount       ErrorCode = "unknown_account"
	CodeDataIntegrity        ErrorCode = "data_integrity"
	CodeTransactionFailed    ErrorCode = "transaction_failed"
	CodeBriefSynthesisFailed ErrorCode = "brief_synthesis_failed"
	CodeInternal             ErrorCode = "internal"
)

// Error is the canonical engine error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an engine error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with engine error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or a wrapped err) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var fErr *Error
	if !errors.As(err, &fErr) {
		return false
	}
	return fErr.Code == code
}

// CodeOf extracts the engine error code when available.
func CodeOf(err error) ErrorCode {
	var fErr *Error
	if !errors.As(err, &fErr) {
		return ""
	}
	return fErr.Code
}
