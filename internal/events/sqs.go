package events

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
)

type sqsPublisher struct {
	client   *sqs.Client
	queueURL string
	log      *zap.Logger
}

// NewSQSPublisher builds a Publisher that fans events out through an SQS
// queue, using the ambient AWS credential chain.
func NewSQSPublisher(ctx context.Context, queueURL string, log *zap.Logger) (Publisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &sqsPublisher{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
		log:      log.Named("events.sqs"),
	}, nil
}

func (p *sqsPublisher) PublishPaymentCreated(ctx context.Context, event PaymentCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return err
	}
	p.log.Debug("payment created event published",
		zap.String("order_id", event.OrderID),
	)
	return nil
}
