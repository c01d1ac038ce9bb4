// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
	"github.com/taibuivan/lexicon/internal/platform/constants"
	"github.com/taibuivan/lexicon/internal/platform/ctxutil"
	"github.com/taibuivan/lexicon/internal/platform/respond"
	"github.com/taibuivan/lexicon/internal/platform/sec"
)

// TokenVerifier checks a bearer token, including revocation.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenStr string) (*sec.AuthClaims, error)
}

/*
Authenticate resolves "Authorization: Bearer <token>" into claims on the
request context.

A request without the header continues anonymously, so [RequireAuth]
decides per route. A malformed header or a token the verifier rejects is
answered with 401 here, carrying an RFC 6750 challenge.
*/
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, constants.TokenTypeBearer) || token == "" {
				challenge(writer, "invalid_request")
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(request.Context(), token)
			if err != nil {
				// Revocation lookups can fail for reasons other than the token.
				if appError := apperr.As(err); appError != nil && appError.Code == apperr.CodeInternal {
					respond.Error(writer, request, err)
					return
				}
				challenge(writer, "invalid_token")
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	}
}

// RequireAuth rejects anonymous requests. Mount it after [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			challenge(writer, "")
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func challenge(writer http.ResponseWriter, code string) {
	value := `Bearer realm="` + constants.AppName + `"`
	if code != "" {
		value += `, error="` + code + `"`
	}
	writer.Header().Set(constants.HeaderWWWAuthenticate, value)
}
