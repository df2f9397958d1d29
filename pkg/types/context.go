package types

import "context"

type clickIdKey struct{}

// WithClickId tags ctx with the id of the button click that caused the work.
func WithClickId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clickIdKey{}, id)
}

// ClickIdFromContext returns the click id on ctx, or "" outside of a click.
func ClickIdFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clickIdKey{}).(string)
	return id
}
