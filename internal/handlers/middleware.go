package handlers

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/linkpreview/internal/auth"
)

// adminPathPrefix guards every admin API operation except the login itself.
const (
	adminPathPrefix = "/api/admin"
	loginPath       = "/api/admin/login"
)

// SessionGuard is a huma middleware that rejects admin API calls without a
// valid session cookie.
func SessionGuard(api huma.API, sessions auth.SessionProvider) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		path := ctx.Operation().Path

		if !strings.HasPrefix(path, adminPathPrefix) || path == loginPath {
			next(ctx)

			return
		}

		token := sessionToken(ctx)
		if token == "" || sessions.Verify(token) != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "unauthorized")

			return
		}

		next(ctx)
	}
}

func sessionToken(ctx huma.Context) string {
	header := ctx.Header("Cookie")

	for _, part := range strings.Split(header, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && name == auth.CookieName {
			return value
		}
	}

	return ""
}
