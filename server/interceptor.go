package server

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/zerustech/string/metric"
)

// MetricsInterceptor records per-procedure request counts and latency.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			metric.RequestsTotal.WithLabelValues(req.Spec().Procedure, code).Inc()
			metric.RequestDurationSec.WithLabelValues(req.Spec().Procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
