package ctxutil

import "context"

type requestDataKey struct{}

// RequestData carries per-request identifiers through the call chain so
// services and repos can tag their logs without seeing the gin context.
type RequestData struct {
	RequestID string
	TraceID   string
	ClientIP  string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// LogFields returns the identifiers in ctx as logger key-value pairs.
func LogFields(ctx context.Context) []interface{} {
	rd := GetRequestData(ctx)
	if rd == nil {
		return nil
	}
	fields := make([]interface{}, 0, 4)
	if rd.RequestID != "" {
		fields = append(fields, "request_id", rd.RequestID)
	}
	if rd.TraceID != "" {
		fields = append(fields, "trace_id", rd.TraceID)
	}
	return fields
}
