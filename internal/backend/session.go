package backend

import "context"

type ctxKey int

const (
	ctxKeyToken ctxKey = iota
	ctxKeyDoctorID
)

// WithSession stashes the caller's bearer token and doctor identity on
// the context. The token is forwarded verbatim on every outbound call;
// the doctor id keys per-doctor state (store, cache).
func WithSession(ctx context.Context, token string, doctorID int) context.Context {
	ctx = context.WithValue(ctx, ctxKeyToken, token)
	return context.WithValue(ctx, ctxKeyDoctorID, doctorID)
}

func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(ctxKeyToken).(string)
	return tok
}

func DoctorFrom(ctx context.Context) int {
	id, _ := ctx.Value(ctxKeyDoctorID).(int)
	return id
}
