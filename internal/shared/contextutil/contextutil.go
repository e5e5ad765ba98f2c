package contextutil

import "context"

// contextKey adalah tipe privat agar tidak terjadi tabrakan key dengan library lain
type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID memasukkan Request ID ke dalam context
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID mengambil Request ID dari context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}
