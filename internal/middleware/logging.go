package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, user ID, duration and outcome. Client faults
// (invalid arguments, missing records, bad tokens) log at WARN, server
// faults at ERROR.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("user_id", GetUserID(ctx)),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if err == nil {
				slog.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, slog.String("code", code.String()), slog.Any("error", err))
			level := slog.LevelError
			if isClientFault(code) {
				level = slog.LevelWarn
			}
			slog.LogAttrs(ctx, level, "RPC error", attrs...)
			return resp, err
		}
	}
}

func isClientFault(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeFailedPrecondition,
		connect.CodeUnauthenticated, connect.CodePermissionDenied, connect.CodeAlreadyExists:
		return true
	}
	return false
}
