package session

import "context"

// TokenSource adapts a Store into the gateway's credential source. It reads
// the store on every request, so a teardown is visible to the very next
// outgoing call.
type TokenSource struct {
	store Store
}

func NewTokenSource(store Store) *TokenSource {
	return &TokenSource{store: store}
}

// Token returns the current bearer token, or "" when anonymous or when the
// store is unreadable (the request then goes out unauthenticated and the
// backend answers 401, which is the correct outcome).
func (t *TokenSource) Token(ctx context.Context) string {
	creds, err := t.store.Load(ctx)
	if err != nil {
		return ""
	}
	return creds.Token
}
