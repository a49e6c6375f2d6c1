package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/charmbracelet/log"
)

// DefaultRegion is the region the notification topic lives in.
const DefaultRegion = "ap-south-1"

// Notifier publishes pipeline status notifications.
type Notifier interface {
	Notify(ctx context.Context, subject, message string) error
}

// SNSNotifier publishes notifications to an SNS topic.
type SNSNotifier struct {
	client   snsiface.SNSAPI
	topicARN string
}

// NewSNSNotifier creates a notifier for the given topic.
func NewSNSNotifier(region, topicARN string) (*SNSNotifier, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &SNSNotifier{
		client:   sns.New(sess),
		topicARN: topicARN,
	}, nil
}

// Notify publishes one message, retrying transient publish failures.
func (n *SNSNotifier) Notify(ctx context.Context, subject, message string) error {
	return retry.Do(
		func() error {
			out, err := n.client.PublishWithContext(ctx, &sns.PublishInput{
				TopicArn: aws.String(n.topicARN),
				Subject:  aws.String(subject),
				Message:  aws.String(message),
			})
			if err != nil {
				return err
			}

			log.Debug("Notification sent", "messageId", aws.StringValue(out.MessageId))
			return nil
		},
		retry.Attempts(3),
		retry.Delay(2*time.Second),
		retry.LastErrorOnly(true),
	)
}

// LogNotifier logs notifications instead of publishing them. Used when no
// topic is configured.
type LogNotifier struct{}

// Notify logs the notification.
func (LogNotifier) Notify(ctx context.Context, subject, message string) error {
	log.Info("Pipeline notification", "subject", subject, "message", message)
	return nil
}
