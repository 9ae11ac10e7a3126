package model

import (
	"fmt"

	"golang.org/x/xerrors"
)

/*
ConfigurationError reports an invalid run request detected before any compute
*/
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func Misconfigured(format string, a ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, a...)}
}

/*
UnsupportedRegressorError is a ConfigurationError for an unknown regressor kind
*/
type UnsupportedRegressorError struct {
	Kind Kind
}

func (e *UnsupportedRegressorError) Error() string {
	return fmt.Sprintf("unsupported regressor `%v`", e.Kind)
}

func (e *UnsupportedRegressorError) Unwrap() error {
	return &ConfigurationError{Reason: e.Error()}
}

/*
FitError wraps a failure of the numeric backend while fitting a model
*/
type FitError struct {
	Kind Kind
	Err  error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("failed to fit %v: %v", e.Kind, e.Err)
}

func (e *FitError) Unwrap() error {
	return e.Err
}

func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return xerrors.As(err, &e)
}

func IsFitError(err error) bool {
	var e *FitError
	return xerrors.As(err, &e)
}
