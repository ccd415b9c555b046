package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// billRequest is implemented by every request that targets one bill.
type billRequest interface {
	GetBillId() string
}

// LoggingInterceptor returns a Connect interceptor that logs one line per RPC with the
// procedure, target bill, result code and duration.
//
// Errors the caller can fix log at warn; server-side failures log at error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if msg, ok := req.Any().(billRequest); ok && msg.GetBillId() != "" {
				attrs = append(attrs, slog.String("bill_id", msg.GetBillId()))
			}

			if err == nil {
				slog.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
				return resp, nil
			}
			code := connect.CodeOf(err)
			attrs = append(attrs,
				slog.String("code", code.String()),
				slog.String("error", err.Error()),
				slog.String("peer", req.Peer().Addr),
			)
			slog.LogAttrs(ctx, levelFor(code), "RPC failed", attrs...)
			return resp, err
		}
	}
}

func levelFor(code connect.Code) slog.Level {
	switch code {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss, connect.CodeUnavailable:
		return slog.LevelError
	}
	return slog.LevelWarn
}
