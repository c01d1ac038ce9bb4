// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP chain wrapped around every route.

Order, outermost first:

	RequestID -> Trace -> StructuredLogger -> Timeout -> RateLimit
	  -> PanicRecovery -> CORS -> Authenticate -> [RequireAuth]

Every middleware has the func(http.Handler) http.Handler shape chi expects.
*/
package middleware
