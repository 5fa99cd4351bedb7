package services

import (
	"context"
	"encoding/json"

	"booking-service/models"
	aws_pkg "booking-service/pkg/aws"
)

// SNSBookingPublisher publishes booking events to an SNS topic.
type SNSBookingPublisher struct {
	sns      aws_pkg.SNSPublisher
	topicArn string
}

func NewSNSBookingPublisher(sns aws_pkg.SNSPublisher, topicArn string) *SNSBookingPublisher {
	return &SNSBookingPublisher{sns: sns, topicArn: topicArn}
}

func (p *SNSBookingPublisher) PublishBookingConfirmed(ctx context.Context, event models.BookingConfirmedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.sns.Publish(ctx, p.topicArn, payload, map[string]string{"event_type": event.Type})
}
