package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

type ErrorCode string

const (
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeNotSupported    ErrorCode = "NOT_SUPPORTED"
	CodeParse           ErrorCode = "PARSE_ERROR"
)

// Context keys.
const (
	CtxPath     = "path"
	CtxLanguage = "language"
	CtxTable    = "table"
	CtxToken    = "token"
)

// Field is one piece of error context.
type Field struct {
	Key   string
	Value any
}

// DomainError carries a stable code plus context fields in the order they
// were attached.
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
	Fields  []Field
}

// WithContext sets key, replacing an earlier value for the same key.
func (e *DomainError) WithContext(key string, value any) *DomainError {
	for i := range e.Fields {
		if e.Fields[i].Key == key {
			e.Fields[i].Value = value
			return e
		}
	}
	e.Fields = append(e.Fields, Field{Key: key, Value: value})
	return e
}

// Get returns the context value stored under key.
func (e *DomainError) Get(key string) (any, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (e *DomainError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	for _, f := range e.Fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// LogValue groups the code, message and context under one slog attribute.
func (e *DomainError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.Fields)+3)
	attrs = append(attrs, slog.String("code", string(e.Code)), slog.String("msg", e.Message))
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}
	for _, f := range e.Fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	return slog.GroupValue(attrs...)
}

func New(code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg}
}

func Wrap(err error, code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg, Err: err}
}

// AddContext attaches key/value context, wrapping plain errors as internal ones.
func AddContext(err error, key string, value any) error {
	var de *DomainError
	if errors.As(err, &de) {
		de.WithContext(key, value)
		return err
	}
	return &DomainError{
		Code:    CodeInternal,
		Message: "wrapped error",
		Err:     err,
		Fields:  []Field{{Key: key, Value: value}},
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or
// CodeInternal.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
