package interview

import (
	"errors"
	"fmt"
)

var (
	ErrNoCredential  = errors.New("no api credential configured")
	ErrEmptyResponse = errors.New("empty completion")
	ErrEmptyHistory  = errors.New("no interview history")
)

// ServiceError is any failure of the remote text-generation path. It never
// leaves the engine; it is logged and replaced by the fallback result.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Generation is the outcome of one engine operation. Value is always
// usable; Err holds the ServiceError that forced the fallback, if any.
type Generation[T any] struct {
	Value  T
	Source Source
	Err    *ServiceError
}

func remote[T any](v T) Generation[T] {
	return Generation[T]{Value: v, Source: SourceRemote}
}

func fallback[T any](v T, err *ServiceError) Generation[T] {
	return Generation[T]{Value: v, Source: SourceFallback, Err: err}
}

func (g Generation[T]) Fallback() bool {
	return g.Source == SourceFallback
}
