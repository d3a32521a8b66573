package common

import (
	"log"
	"time"
	"venuebook/src/models"
	"venuebook/src/types"

	"gorm.io/gorm"
)

// RollupWindow is the trailing period the aggregator scans.
const RollupWindow = 30 * 24 * time.Hour

// RunAnalyticsRollup derives per-venue rollups by scanning booking and payment
// rows over the trailing window. Records are appended, never updated: the
// table is an audit trail.
func RunAnalyticsRollup(db *gorm.DB) error {
	since := time.Now().UTC().Add(-RollupWindow)
	today := time.Now().UTC().Truncate(24 * time.Hour)

	var venueIds []uint
	if err := db.
		Model(&models.Venue{}).
		Where("is_active = ?", true).
		Pluck("id", &venueIds).
		Error; err != nil {
		return err
	}

	for _, venueId := range venueIds {
		var total, confirmed int64
		var revenue float64
		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.
				Model(&models.Booking{}).
				Where("venue_id = ? AND created_at >= ?", venueId, since).
				Count(&total).
				Error; err != nil {
				return err
			}
			if err := tx.
				Model(&models.Booking{}).
				Where("venue_id = ? AND created_at >= ? AND status = ?", venueId, since, types.BOOKING_CONFIRMED).
				Count(&confirmed).
				Error; err != nil {
				return err
			}
			if err := tx.
				Model(&models.Payment{}).
				Joins("JOIN bookings ON bookings.id = payments.booking_id").
				Where("bookings.venue_id = ? AND payments.created_at >= ? AND payments.status = ?", venueId, since, types.PAYMENT_COMPLETED).
				Select("COALESCE(SUM(payments.amount), 0)").
				Scan(&revenue).
				Error; err != nil {
				return err
			}
			records := []models.AnalyticsRecord{
				{VenueID: venueId, Metric: "bookings_total", Value: float64(total), Date: today},
				{VenueID: venueId, Metric: "bookings_confirmed", Value: float64(confirmed), Date: today},
				{VenueID: venueId, Metric: "revenue_total", Value: revenue, Date: today},
			}
			return tx.Create(&records).Error
		}); err != nil {
			log.Printf("[analytics] rollup failed for venue %d: %s\n", venueId, err.Error())
		}
	}
	return nil
}
