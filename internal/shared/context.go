package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the console session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the console session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// Notify queues a flash for the next page rendered in this session. It
// reports false when the request has no session or message is empty.
func Notify(ctx context.Context, kind, message string) bool {
	sess := SessionFromContext(ctx)
	if sess == nil || message == "" {
		return false
	}
	sess.AddFlash(FlashMessage{Kind: kind, Message: message})
	return true
}
