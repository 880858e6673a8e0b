// Package operation wraps service operations with tracing, metrics, logging,
// panic recovery and transaction handling.
package operation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/observability"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Runner holds the dependencies shared by every operation of one service.
type Runner struct {
	Service string
	Logger  *slog.Logger
	Metrics observability.OperationMetrics
	Tracer  trace.Tracer
	DB      *bun.DB
}

// Func is the signature of a telemetry-wrapped operation.
type Func[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// TxFunc is the signature of an operation body running against a db handle.
type TxFunc[S any, F any] func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error)

// errRollback forces the transaction closed when the body reports a domain
// failure after it may already have written.
var errRollback = errors.New("operation: rollback on failure result")

// WithTelemetry wraps op with a span, metrics, logs and panic recovery.
func WithTelemetry[S any, F any](
	r *Runner,
	ctx context.Context,
	operationName string,
	identifier string,
	op Func[S, F],
) (result results.OperationResult[S, F], err error) {
	logger := r.logger()

	var span trace.Span
	if r.Tracer != nil {
		ctx, span = r.Tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
			attribute.String("service", r.Service),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if r.Metrics != nil {
		r.Metrics.RecordOperationAttempt(ctx, operationName, r.Service)
	}

	startTime := time.Now()
	defer func() {
		if r.Metrics != nil {
			r.Metrics.RecordOperationDuration(ctx, operationName, r.Service, time.Since(startTime))
		}
	}()

	logger.DebugContext(ctx, "Operation triggered",
		slog.String("operation", operationName),
		slog.String("identifier", identifier),
	)

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, rec)
			logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("identifier", identifier),
				slog.Any("error", err),
			)
			if r.Metrics != nil {
				r.Metrics.RecordOperationFailure(ctx, operationName, r.Service)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.Any("error", wrappedErr),
		)
		if r.Metrics != nil {
			r.Metrics.RecordOperationFailure(ctx, operationName, r.Service)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.Any("failure_payload", *result.Failure),
		)
	} else {
		logger.InfoContext(ctx, "Operation completed successfully",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
		)
	}

	if r.Metrics != nil {
		r.Metrics.RecordOperationSuccess(ctx, operationName, r.Service)
	}

	return result, nil
}

// RunInTx runs fn inside a transaction. A failure result rolls the
// transaction back but is still returned as a result, not as an error.
// Without a database (unit tests) fn runs with a nil handle.
func RunInTx[S any, F any](r *Runner, ctx context.Context, fn TxFunc[S, F]) (results.OperationResult[S, F], error) {
	if r.DB == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		if txErr != nil {
			return txErr
		}
		if result.IsFailure() {
			return errRollback
		}
		return nil
	})
	if errors.Is(err, errRollback) {
		return result, nil
	}
	return result, err
}

// Run is the common composition: telemetry around a transaction.
func Run[S any, F any](r *Runner, ctx context.Context, operationName, identifier string, fn TxFunc[S, F]) (results.OperationResult[S, F], error) {
	return WithTelemetry(r, ctx, operationName, identifier, func(ctx context.Context) (results.OperationResult[S, F], error) {
		return RunInTx(r, ctx, fn)
	})
}

// Unwrap converts an operation outcome to the (value, error) pair returned by
// public service methods.
func Unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if result.Success == nil {
		return zero, errors.New("operation returned neither success nor failure")
	}
	return *result.Success, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
