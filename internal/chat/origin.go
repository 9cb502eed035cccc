package chat

import "context"

// Origin is where the message being handled came from
type Origin struct {
	Platform string
	Channel  string
}

type originKey struct{}

// WithOrigin records the inbound platform and channel so replies built deep
// in a handler can find their way back
func WithOrigin(ctx context.Context, o Origin) context.Context {
	return context.WithValue(ctx, originKey{}, o)
}

// OriginFrom returns the origin stored by WithOrigin
func OriginFrom(ctx context.Context) (Origin, bool) {
	o, ok := ctx.Value(originKey{}).(Origin)
	return o, ok
}

// withDefaults fills an unaddressed message from the context origin
func withDefaults(ctx context.Context, msg Message) Message {
	o, ok := OriginFrom(ctx)
	if !ok {
		return msg
	}
	if msg.Platform == "" {
		msg.Platform = o.Platform
	}
	if msg.Channel == "" {
		msg.Channel = o.Channel
	}
	return msg
}
