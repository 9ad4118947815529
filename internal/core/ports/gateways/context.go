package gateways

import "context"

type contextKey string

const sessionCookieKey = contextKey("mfSessionCookie")

// ContextWithSessionCookie attaches the MF backend session cookie to ctx.
func ContextWithSessionCookie(ctx context.Context, cookie string) context.Context {
	if cookie == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionCookieKey, cookie)
}

// SessionCookieFromContext returns the cookie set by ContextWithSessionCookie.
func SessionCookieFromContext(ctx context.Context) (string, bool) {
	cookie, ok := ctx.Value(sessionCookieKey).(string)
	return cookie, ok && cookie != ""
}
