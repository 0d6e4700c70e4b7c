package usecase

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

type Stage string

const (
	StageListDomains    Stage = "LIST_DOMAINS"
	StageDescribeDomain Stage = "DESCRIBE_DOMAIN"
	StageResolveToken   Stage = "RESOLVE_TOKEN"
	StageResolveAlias   Stage = "RESOLVE_ACCOUNT_ALIAS"
	StageNotify         Stage = "NOTIFY"
)

const unknownCode = "Unknown"

// Error is a failed external call, tagged with the run stage it happened in
// and the provider's error code.
type Error struct {
	Stage Stage
	Code  string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Stage, e.Code)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Stage, e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(stage Stage, err error) *Error {
	return &Error{Stage: stage, Code: providerCode(err), Err: err}
}

// errorCoder matches errors from non-AWS collaborators that expose a
// provider code the same way smithy.APIError does.
type errorCoder interface {
	ErrorCode() string
}

func providerCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() != "" {
		return apiErr.ErrorCode()
	}
	var coder errorCoder
	if errors.As(err, &coder) && coder.ErrorCode() != "" {
		return coder.ErrorCode()
	}
	return unknownCode
}
