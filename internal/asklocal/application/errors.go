package application

import (
	"errors"
	"fmt"
)

var (
	ErrAuthRequired         = errors.New("auth required")
	ErrAuthInvalid          = errors.New("auth invalid")
	ErrSubscriptionRequired = errors.New("subscription required")
	ErrBadRequest           = errors.New("bad request")
	ErrConfiguration        = errors.New("configuration error")
	ErrStore                = errors.New("store error")
	ErrRateLimited          = errors.New("provider rate limited")
	ErrQuotaExhausted       = errors.New("provider quota exhausted")
	ErrProvider             = errors.New("provider error")
)

var (
	ErrInvalidBody      = fmt.Errorf("%w: invalid JSON body", ErrBadRequest)
	ErrQuestionRequired = fmt.Errorf("%w: question is required", ErrBadRequest)
)

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
