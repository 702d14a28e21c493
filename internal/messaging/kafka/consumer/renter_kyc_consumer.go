package consumer

import (
	"context"
	"encoding/json"

	"proryx/internal/events"
	"proryx/internal/renter"
	"proryx/internal/tenancy"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeRenterKYCRequests moves a renter's uploaded documents into
// review when an operator queues a KYC check.
func ConsumeRenterKYCRequests(
	ctx context.Context,
	broker string,
	groupID string,
	renterService renter.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.renter_kyc")

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		GroupID: groupID,
		Topic:   events.RenterKYCRequestedTopic,
	})
	defer reader.Close()

	log.Info("renter kyc consumer started",
		zap.String("topic", events.RenterKYCRequestedTopic),
		zap.String("group_id", groupID),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("renter kyc consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if err := handleKYCRequested(ctx, renterService, msg.Value, log); err != nil {
			if isRetryable(err) {
				log.Error("handle kyc request failed, will retry",
					zap.String("key", string(msg.Key)),
					zap.Error(err),
				)
				continue
			}
			log.Warn("skipping kyc request message",
				zap.String("key", string(msg.Key)),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
		}
	}
}

func handleKYCRequested(
	ctx context.Context,
	renterService renter.Service,
	payload []byte,
	log *zap.Logger,
) error {
	var evt events.RenterKYCRequestedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return err
	}

	tc, err := tenancy.NewContext(evt.AccountID, evt.CompanyID)
	if err != nil {
		return err
	}

	log.Info("kyc review requested",
		zap.String("renter_uuid", evt.RenterUUID),
		zap.String("requested_by", evt.RequestedBy),
		zap.Int64("account_id", evt.AccountID),
		zap.Int64("company_id", evt.CompanyID),
	)

	return renterService.BeginDocumentReview(ctx, tc, evt.RenterUUID)
}
