package common

import (
	"log"
	"time"
	"venuebook/src/models"
	"venuebook/src/types"

	"gorm.io/gorm"
)

// PaymentOutcome is the reconciliation-relevant slice of a provider event:
// which local Payment it targets, when the provider created the event, and
// which terminal status it reports.
type PaymentOutcome struct {
	ProviderPaymentID string
	EventCreated      int64
	Target            types.PaymentStatus
	FailureReason     string
}

type transition int

const (
	applyTransition transition = iota
	refreshMetadata
	skipStale
	skipTerminal
)

// classifyTransition decides what an incoming event may do to a Payment.
// Events older than the last applied one are rejected, so a late-arriving
// failure can never overwrite a success. An exact replay of the current
// terminal outcome only refreshes the outcome timestamp in metadata, and a
// terminal status never transitions to a different one.
func classifyTransition(current types.PaymentStatus, storedEventAt, eventAt int64, target types.PaymentStatus) transition {
	if eventAt < storedEventAt {
		return skipStale
	}
	if current == target {
		return refreshMetadata
	}
	if current.Terminal() {
		return skipTerminal
	}
	return applyTransition
}

func storedEventCreatedAt(md types.JSONB) int64 {
	if md == nil {
		return 0
	}
	switch v := md["eventCreatedAt"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

// ReconcilePayment converges local Payment/Booking state with a provider
// event. Payment, Booking, and the analytics audit row commit or roll back
// together. An unknown provider payment id is logged and dropped without
// touching any row. The returned booking is non-nil only when this call
// confirmed it, so the caller can fire post-commit notifications.
func ReconcilePayment(db *gorm.DB, outcome PaymentOutcome) (*models.Booking, error) {
	var confirmed *models.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		res := tx.
			Model(&models.Payment{}).
			Where("provider_payment_id = ?", outcome.ProviderPaymentID).
			Limit(1).
			Find(&payment)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			log.Printf("[reconcile] no local Payment for provider id %s, dropping event\n", outcome.ProviderPaymentID)
			return nil
		}

		decision := classifyTransition(payment.Status, storedEventCreatedAt(payment.Metadata), outcome.EventCreated, outcome.Target)
		if decision == skipStale {
			log.Printf("[reconcile] stale event for Payment %s (event %d < stored %d), ignoring\n",
				payment.ID, outcome.EventCreated, storedEventCreatedAt(payment.Metadata))
			return nil
		}
		if decision == skipTerminal {
			log.Printf("[reconcile] Payment %s already %s, refusing transition to %s\n",
				payment.ID, payment.Status, outcome.Target)
			return nil
		}

		now := time.Now().UTC().Format(time.RFC3339)
		metadata := types.JSONB{}
		for k, v := range payment.Metadata {
			metadata[k] = v
		}
		metadata["eventCreatedAt"] = outcome.EventCreated
		switch outcome.Target {
		case types.PAYMENT_COMPLETED:
			metadata["completedAt"] = now
		case types.PAYMENT_FAILED:
			metadata["failedAt"] = now
			if outcome.FailureReason != "" {
				metadata["failureReason"] = outcome.FailureReason
			}
		}

		if err := tx.
			Model(&models.Payment{}).
			Where("id = ?", payment.ID).
			Updates(map[string]any{
				"status":   outcome.Target,
				"metadata": metadata,
			}).Error; err != nil {
			return err
		}

		if decision == refreshMetadata {
			return nil
		}

		// A failed payment leaves the booking alone. The customer may retry;
		// cancellation is a human decision, not a reconciliation one.
		if outcome.Target != types.PAYMENT_COMPLETED || payment.BookingID == nil {
			return nil
		}

		var booking models.Booking
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", *payment.BookingID).
			Preload("Venue").
			First(&booking).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]any{
				"is_paid": true,
				"status":  types.BOOKING_CONFIRMED,
			}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.AnalyticsRecord{
			VenueID: booking.VenueID,
			Metric:  "revenue",
			Value:   payment.Amount,
			Date:    time.Now().UTC(),
		}).Error; err != nil {
			return err
		}
		booking.IsPaid = true
		booking.Status = types.BOOKING_CONFIRMED
		confirmed = &booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}
