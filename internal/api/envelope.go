package api

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/boibazaar/boibazaar/internal/http/response"
)

const metaMessage = "successMessage"

// successMessage sets the message an operation reports on success.
func successMessage(msg string) map[string]any {
	return map[string]any{metaMessage: msg}
}

// EnvelopeTransformer wraps successful bodies as {"success":true,"message":...,"data":...}.
// Error bodies and pre-built envelopes pass through untouched.
func EnvelopeTransformer(ctx huma.Context, _ string, v any) (any, error) {
	switch v.(type) {
	case *APIError, huma.StatusError, response.Envelope, *response.Envelope:
		return v, nil
	}

	env := response.Envelope{Success: true, Data: v}
	if ctx != nil {
		if op := ctx.Operation(); op != nil {
			if msg, ok := op.Metadata[metaMessage].(string); ok {
				env.Message = msg
			}
		}
	}
	return env, nil
}
