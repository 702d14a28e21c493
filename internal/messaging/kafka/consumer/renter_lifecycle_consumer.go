package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"proryx/internal/events"
	"proryx/internal/renter"
	rentererrors "proryx/internal/renter/errors"
	"proryx/internal/tenancy"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeRenterLifecycle seeds the mandatory KYC document placeholders
// for every freshly created renter. The tenant context is rebuilt from
// the event itself, the consumer has no ambient tenant.
func ConsumeRenterLifecycle(
	ctx context.Context,
	broker string,
	groupID string,
	renterService renter.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.renter_lifecycle")

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		GroupID: groupID,
		Topic:   events.RenterCreatedTopic,
	})
	defer reader.Close()

	log.Info("renter lifecycle consumer started",
		zap.String("topic", events.RenterCreatedTopic),
		zap.String("group_id", groupID),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("renter lifecycle consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if err := handleRenterCreated(ctx, renterService, msg.Value, log); err != nil {
			if isRetryable(err) {
				// Leave the offset uncommitted so the message comes back.
				log.Error("handle renter created failed, will retry",
					zap.String("key", string(msg.Key)),
					zap.Error(err),
				)
				continue
			}
			log.Warn("skipping renter created message",
				zap.String("key", string(msg.Key)),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
		}
	}
}

func handleRenterCreated(
	ctx context.Context,
	renterService renter.Service,
	payload []byte,
	log *zap.Logger,
) error {
	var evt events.RenterCreatedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return err
	}

	tc, err := tenancy.NewContext(evt.AccountID, evt.CompanyID)
	if err != nil {
		return err
	}

	log.Info("renter created event received",
		zap.String("renter_uuid", evt.RenterUUID),
		zap.Int64("account_id", evt.AccountID),
		zap.Int64("company_id", evt.CompanyID),
	)

	return renterService.EnsureMandatoryDocuments(ctx, tc, evt.RenterUUID)
}

// isRetryable separates transient failures from poison messages. A
// malformed payload, an unbound tenant pair or a renter that no longer
// exists will never succeed on redelivery.
func isRetryable(err error) bool {
	if errors.Is(err, tenancy.ErrUnboundContext) {
		return false
	}
	if errors.Is(err, rentererrors.ErrRenterNotFound) ||
		errors.Is(err, rentererrors.ErrInvalidRenterID) {
		return false
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return false
	}

	// A duplicate placeholder insert means a previous delivery already
	// did the work.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return false
	}

	return true
}
