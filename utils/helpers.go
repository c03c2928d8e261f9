package utils

import (
	"context"
	"net/http"
	"strconv"
)

type subjectKey struct{}

// WithSubject stores the authenticated token subject on ctx.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

func GetSubject(r *http.Request) (string, bool) {
	subject, ok := r.Context().Value(subjectKey{}).(string)
	return subject, ok && subject != ""
}

// PathID parses a positive integer path value such as {sessionID}.
func PathID(r *http.Request, name string) (uint, bool) {
	n, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
