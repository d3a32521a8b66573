package main

import (
	"encoding/json"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"venuebook/src/common"
	"venuebook/src/lib"
	"venuebook/src/lib/mailer"
	"venuebook/src/models"
	"venuebook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"
)

// paymentWebhookRoute receives provider events. Signature verification is
// mandatory: an unverifiable payload gets a 400 and changes nothing. A DB
// failure inside reconciliation returns a 500 so the provider retries the
// delivery instead of silently losing it.
func paymentWebhookRoute(g *gin.Engine, db *gorm.DB) *gin.RouterGroup {
	api := apiGroup(g)
	api.POST("/payments/webhook", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		log.Printf("[ProviderEvent] %s\n", event.Type)
		switch event.Type {
		case "payment_intent.succeeded":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				log.Printf("[Provider] Error parsing PaymentIntent: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
				return
			}
			booking, err := common.ReconcilePayment(db, common.PaymentOutcome{
				ProviderPaymentID: pi.ID,
				EventCreated:      event.Created,
				Target:            types.PAYMENT_COMPLETED,
			})
			if err != nil {
				log.Printf("Error reconciling succeeded payment %s: %s\n", pi.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
				return
			}
			if booking != nil {
				go notifyBookingConfirmed(db, booking)
			}
		case "payment_intent.payment_failed":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				log.Printf("[Provider] Error parsing PaymentIntent: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
				return
			}
			reason := ""
			if pi.LastPaymentError != nil {
				reason = pi.LastPaymentError.Msg
			}
			if _, err := common.ReconcilePayment(db, common.PaymentOutcome{
				ProviderPaymentID: pi.ID,
				EventCreated:      event.Created,
				Target:            types.PAYMENT_FAILED,
				FailureReason:     reason,
			}); err != nil {
				log.Printf("Error reconciling failed payment %s: %s\n", pi.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
				return
			}
		default:
			log.Printf("[ProviderEvent] ignoring event type %s\n", event.Type)
		}
		ctx.JSON(http.StatusOK, gin.H{"received": true})
	})
	return api
}

func notifyBookingConfirmed(db *gorm.DB, booking *models.Booking) {
	if err := mailer.SendBookingConfirmation(booking); err != nil {
		log.Printf("Error sending confirmation mail for booking %d: %s\n", booking.ID, err.Error())
	}
	if booking.Venue == nil {
		return
	}
	notification := models.Notification{
		UserID: booking.Venue.OwnerID,
		Title:  "Booking confirmed",
		Body:   "A booking at " + booking.Venue.Name + " was paid and confirmed.",
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error creating notification for booking %d: %s\n", booking.ID, err.Error())
	}
}

// minorUnits converts a major-unit amount to the provider's integer minor
// units. Rounded, not truncated: float64(19.99)*100 is 1998.999...
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// paymentRoutes carries the authenticated payment surface: checkout
// initiation and the owner-facing listing.
func paymentRoutes(g *gin.RouterGroup, db *gorm.DB) *gin.RouterGroup {
	g.
		POST("/payments/checkout", func(ctx *gin.Context) {
			var body types.CheckoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var booking models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where("id = ?", body.BookingID).
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			pi, err := lib.CreatePaymentIntent(minorUnits(body.Amount), body.Currency, map[string]string{
				"bookingId": strconv.Itoa(int(booking.ID)),
			})
			if err != nil {
				log.Printf("Error creating payment intent for booking %d: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable"})
				return
			}
			payment := models.Payment{
				BookingID:         &booking.ID,
				ProviderPaymentID: pi.ID,
				Amount:            body.Amount,
				Currency:          body.Currency,
				Status:            types.PAYMENT_PENDING,
				Metadata:          types.JSONB{"initiatedBy": ctx.GetUint("id")},
			}
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&payment).Error
			}); err != nil {
				log.Printf("Error creating payment record: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"payment": payment, "client_secret": pi.ClientSecret})
		}).
		GET("/payments", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			role := types.Role(ctx.GetString("role"))
			// LEFT JOINs so payments detached from a deleted booking stay
			// visible; the ownership filter below still drops them for
			// non-admins since they no longer resolve to a venue.
			query := db.
				Model(&models.Payment{}).
				Joins("LEFT JOIN bookings ON bookings.id = payments.booking_id").
				Joins("LEFT JOIN venues ON venues.id = bookings.venue_id")
			if role != types.ROLE_SUPER_ADMIN {
				query = query.Where("venues.owner_id = ?", userId)
			}
			payments := make([]models.Payment, 0)
			if err := query.
				Order("payments.created_at desc").
				Find(&payments).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"payments": payments, "count": len(payments)})
		})
	return g
}
