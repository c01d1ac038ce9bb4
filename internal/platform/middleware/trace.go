// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/lexicon/internal/platform/ctxutil"
	"github.com/taibuivan/lexicon/internal/platform/telemetry"
)

// Trace opens a server span per request, continuing incoming W3C trace
// context. The span is renamed to the matched route once routing is done,
// so /translations/{id} does not fan out into one name per id.
func Trace() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(request.Context(), propagation.HeaderCarrier(request.Header))

			ctx, span := telemetry.StartSpan(ctx, request.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", request.Method),
					attribute.String("url.path", request.URL.Path),
					attribute.String("request_id", ctxutil.GetRequestID(ctx)),
				),
			)
			defer span.End()

			recorder := newStatusRecorder(writer)
			next.ServeHTTP(recorder, request.WithContext(ctx))

			if route := routePattern(request); route != "" {
				span.SetName(request.Method + " " + route)
				span.SetAttributes(attribute.String("http.route", route))
			}
			span.SetAttributes(attribute.Int("http.response.status_code", recorder.status))
			if recorder.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(recorder.status))
			}
		})
	}
}

// routePattern reads the pattern chi matched. The route context is shared
// by pointer, so it is filled in once the inner router has run.
func routePattern(request *http.Request) string {
	if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
		return routeContext.RoutePattern()
	}
	return ""
}
