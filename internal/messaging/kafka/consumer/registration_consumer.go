package consumer

import (
	"context"
	"encoding/json"

	"go-trainreg/internal/bootstrap"
	"go-trainreg/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeRegistrations records an audit trail entry for every confirmed
// registration. Actual notification dispatch (email) is intentionally not
// implemented; downstream systems subscribe to the same topic.
func ConsumeRegistrations(
	ctx context.Context,
	reader *kafkago.Reader,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.registrations")
	log.Info("registration consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("registration consumer stopped")
				return
			}
			log.Error("fetch registration message failed", zap.Error(err))
			continue
		}

		var event events.ApplicantRegisteredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode applicant_registered event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  "APPLICANT_REGISTERED",
			Message: "Registration confirmed, notification pending",
			Meta: map[string]any{
				"applicant_id": event.ApplicantID,
				"training_id":  event.TrainingID,
				"email":        event.Email,
				"request_id":   event.RequestID,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit registration message failed", zap.Error(err))
			continue
		}

		log.Info("registration event processed",
			zap.String("applicant_id", event.ApplicantID),
			zap.String("training_id", event.TrainingID),
		)
	}
}
