package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMSender is a Sender backed by Firebase Cloud Messaging. It holds a
// messaging client created once at startup and reused across ticks.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender initializes the Firebase app from a service-account credentials
// file and returns a ready-to-use sender. When credentialsFile is empty the
// SDK falls back to application default credentials.
func NewFCMSender(ctx context.Context, credentialsFile string) (*FCMSender, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing messaging client: %w", err)
	}

	return &FCMSender{client: client}, nil
}

// SendAll issues one multicast send carrying all tokens plus the payload and
// maps each SDK outcome onto the transport's error codes. Only the two codes
// that mean a token is permanently dead survive the translation; every other
// delivery error is reported with its raw message and treated as opaque.
func (s *FCMSender) SendAll(ctx context.Context, tokens []string, msg Message) (*BatchResult, error) {
	multicast := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: map[string]string{"url": msg.URL},
	}

	batch, err := s.client.SendEachForMulticast(ctx, multicast)
	if err != nil {
		return nil, fmt.Errorf("multicast send failed: %w", err)
	}

	result := &BatchResult{
		SuccessCount: batch.SuccessCount,
		FailureCount: batch.FailureCount,
		Responses:    make([]Response, 0, len(batch.Responses)),
	}

	for _, r := range batch.Responses {
		result.Responses = append(result.Responses, Response{
			Success:   r.Success,
			ErrorCode: classify(r.Error),
		})
	}

	return result, nil
}

// classify reduces an SDK delivery error to a transport error code.
func classify(err error) string {
	switch {
	case err == nil:
		return ""
	case messaging.IsUnregistered(err):
		return CodeUnregistered
	case errorutils.IsInvalidArgument(err):
		return CodeInvalidToken
	default:
		return err.Error()
	}
}
