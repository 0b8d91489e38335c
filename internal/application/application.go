package application

import "context"

// UseCase is a single application entry point driven by a command value.
// Business outcomes such as a declined payment belong in R; the error is for calls that could not run.
type UseCase[C any, R any] interface {
	Execute(ctx context.Context, cmd C) (R, error)
}
