package push

import (
	"context"
)

// Transport error codes that mean a token is permanently dead and must be
// purged from the registry. Every other failure code is treated as transient
// and the token is left alone.
const (
	CodeUnregistered = "registration-token-not-registered"
	CodeInvalidToken = "invalid-argument"
)

// Message is the notification payload delivered to every token in a batch.
// URL rides along as auxiliary data so the client can deep-link on tap.
type Message struct {
	Title string
	Body  string
	URL   string
}

// Response is the per-token outcome of a multicast send, aligned positionally
// with the token sequence that was passed in.
type Response struct {
	Success   bool
	ErrorCode string
}

// BatchResult is what a Sender returns for one multicast call.
type BatchResult struct {
	SuccessCount int
	FailureCount int
	Responses    []Response
}

// Sender is the delivery transport: one multicast send carrying all tokens
// plus the payload, returning a per-token outcome array. FCMSender is the
// production implementation; tests substitute a fake.
type Sender interface {
	SendAll(ctx context.Context, tokens []string, msg Message) (*BatchResult, error)
}

// DispatchResult aggregates one dispatch call: delivery counts plus the set
// of tokens the transport reported as permanently invalid. It is transient,
// produced once per dispatch and consumed immediately by registry cleanup.
type DispatchResult struct {
	SuccessCount  int
	FailureCount  int
	InvalidTokens []string
}

// Dispatch sends msg to every token in one batch call and classifies the
// outcome per token. An empty token list is legal and returns an empty result
// without touching the transport. A batch with some failed tokens is a normal,
// successful call; only a failure of the batch call itself is returned as an
// error.
func Dispatch(ctx context.Context, sender Sender, tokens []string, msg Message) (*DispatchResult, error) {
	if len(tokens) == 0 {
		return &DispatchResult{}, nil
	}

	batch, err := sender.SendAll(ctx, tokens, msg)
	if err != nil {
		return nil, err
	}

	result := &DispatchResult{
		SuccessCount: batch.SuccessCount,
		FailureCount: batch.FailureCount,
	}

	for i, resp := range batch.Responses {
		if resp.Success || i >= len(tokens) {
			continue
		}
		if resp.ErrorCode == CodeUnregistered || resp.ErrorCode == CodeInvalidToken {
			result.InvalidTokens = append(result.InvalidTokens, tokens[i])
		}
	}

	return result, nil
}
