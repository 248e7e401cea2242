package server

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"recyloop/internal"
	"recyloop/pkg/types"

	"github.com/k0kubun/pp"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyAuthID contextKey = "auth_id"
	contextKeyEmail  contextKey = "email"
	contextKeyGroups contextKey = "groups"
)

const adminGroupName = "admin"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAuth verifies the caller's access token and adds their identity to
// the request context. The token comes from the Authorization header, with
// the encrypted session cookie as fallback for browser clients.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken, ok := s.accessTokenFromRequest(r)
		if !ok {
			s.respondError(w, &types.Error{Kind: types.ErrorKindUnauthorized, Detail: "missing access token"})
			return
		}

		set, err := s.jwksCache.Lookup(r.Context(), s.jwksURL)
		if err != nil {
			s.logger.WithError(err).Error("failed to fetch JWKS")
			s.respondError(w, &types.Error{Kind: types.ErrorKindUnauthorized, Detail: "token verification unavailable"})
			return
		}

		token, err := jwt.Parse(
			[]byte(accessToken),
			jwt.WithKeySet(set),
			jwt.WithValidate(true),
		)
		if err != nil {
			s.logger.WithError(err).Debug("failed to parse JWT")
			s.respondError(w, &types.Error{Kind: types.ErrorKindUnauthorized, Detail: "invalid access token"})
			return
		}

		authID, ok := token.Subject()
		if !ok || authID == "" {
			s.logger.Error("no subject claim in JWT")
			s.respondError(w, &types.Error{Kind: types.ErrorKindUnauthorized, Detail: "invalid access token"})
			return
		}

		var email string
		if err := token.Get("email", &email); err != nil {
			s.logger.WithError(err).Debug("no email claim in JWT")
		}

		// Group claims arrive as a JSON array of arbitrary values.
		var groups []string
		var rawGroups []interface{}
		if err := token.Get("cognito:groups", &rawGroups); err == nil {
			for _, group := range rawGroups {
				if name, ok := group.(string); ok {
					groups = append(groups, name)
				}
			}
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, contextKeyAuthID, authID)
		ctx = context.WithValue(ctx, contextKeyGroups, groups)
		if email != "" {
			ctx = context.WithValue(ctx, contextKeyEmail, email)
		}

		if s.config.Environment == "development" {
			pp.Println(authID, email, groups)
		}

		s.logger.WithFields(logrus.Fields{
			"auth_id": authID,
			"email":   email,
		}).Debug("authenticated user")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates administrative routes on the admin group claim.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		groups, _ := r.Context().Value(contextKeyGroups).([]string)
		if !slices.Contains(groups, adminGroupName) {
			s.respondError(w, &types.Error{Kind: types.ErrorKindForbidden, Detail: "administrator role required"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Service) accessTokenFromRequest(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		if found && token != "" {
			return token, true
		}
	}

	cookie, err := r.Cookie(internal.COOKIE_ACCESS_TOKEN_NAME)
	if err != nil {
		return "", false
	}

	var accessToken string
	if err := s.cookie.Decode(internal.COOKIE_ACCESS_TOKEN_NAME, cookie.Value, &accessToken); err != nil {
		s.logger.WithError(err).Debug("failed to decrypt access token cookie")
		return "", false
	}

	return accessToken, true
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newPath := strings.TrimSuffix(path, "/")
			newURL := *r.URL
			newURL.Path = newPath

			// 308 keeps the method and body on replay; a 301 would turn
			// a redirected POST into a GET.
			status := http.StatusMovedPermanently
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				status = http.StatusPermanentRedirect
			}

			// Preserve query string
			http.Redirect(w, r, newURL.String(), status)
			return
		}

		next.ServeHTTP(w, r)
	})
}
