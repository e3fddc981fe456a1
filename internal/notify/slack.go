package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"
)

// slackTimeout bounds one webhook post.
const slackTimeout = 5 * time.Second

// SlackSink posts the extracted value to a Slack incoming webhook.
type SlackSink struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlackSink creates a SlackSink for the given webhook URL.
func NewSlackSink(webhookURL string) *SlackSink {
	return &SlackSink{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: slackTimeout},
	}
}

func (s *SlackSink) Name() string { return "slack" }

// Notify posts {"text": "Valeur extraite : <value>"} to the webhook.
func (s *SlackSink) Notify(ctx context.Context, value float64) error {
	msg := &slack.WebhookMessage{Text: fmt.Sprintf("Valeur extraite : %v", value)}
	if err := slack.PostWebhookCustomHTTPContext(ctx, s.webhookURL, s.httpClient, msg); err != nil {
		return fmt.Errorf("posting to slack webhook: %w", err)
	}
	return nil
}
