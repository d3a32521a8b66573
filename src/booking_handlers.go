package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"
	"venuebook/src/auth"
	"venuebook/src/config"
	"venuebook/src/models"
	"venuebook/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// bookingRoutes wires the public booking surface: creation and the
// contact-info-as-credential customer lookup.
func bookingRoutes(g *gin.Engine, db *gorm.DB) *gin.RouterGroup {
	api := apiGroup(g)
	api.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			date, err := time.Parse(config.TIME_PARSE_FORMAT, body.Date)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking := models.Booking{
				VenueID:       body.VenueID,
				TableID:       body.TableID,
				CustomerName:  body.CustomerName,
				CustomerEmail: body.CustomerEmail,
				CustomerPhone: body.CustomerPhone,
				Date:          date,
				PartySize:     body.PartySize,
				ServiceType:   body.ServiceType,
				Status:        types.BOOKING_PENDING,
			}
			err = db.Transaction(func(tx *gorm.DB) error {
				var venue models.Venue
				res := tx.
					Model(&models.Venue{}).
					Where("id = ? AND is_active = ?", body.VenueID, true).
					Limit(1).
					Find(&venue)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return gorm.ErrRecordNotFound
				}
				if body.TableID != nil {
					var table models.VenueTable
					tres := tx.
						Model(&models.VenueTable{}).
						Where("id = ? AND venue_id = ? AND is_active = ?", *body.TableID, venue.ID, true).
						Limit(1).
						Find(&table)
					if tres.Error != nil {
						return tres.Error
					}
					if tres.RowsAffected == 0 {
						return gorm.ErrRecordNotFound
					}
				}
				return tx.Create(&booking).Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
					return
				}
				log.Printf("Error creating booking: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"booking": booking})
		})

	customer := api.Group("/customer")
	customer.
		GET("/bookings", func(ctx *gin.Context) {
			email := ctx.Query("email")
			phone := ctx.Query("phone")
			if email == "" && phone == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "either email or phone is required"})
				return
			}
			query := db.Model(&models.Booking{}).Preload("Venue")
			if email != "" {
				query = query.Where("customer_email = ?", email)
			} else {
				query = query.Where("customer_phone = ?", phone)
			}
			bookings := make([]models.Booking, 0)
			if err := query.
				Order("created_at desc").
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"bookings": bookings})
		})
	return api
}

// venueBookingRoutes is the owner-facing management surface. Attached to the
// authorized group; ownership is decided by the policy engine.
func venueBookingRoutes(g *gin.RouterGroup, db *gorm.DB) *gin.RouterGroup {
	g.
		GET("/venues/:id/bookings", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			limit := 10
			if l, err := strconv.Atoi(ctx.DefaultQuery("limit", "10")); err == nil && l > 0 && l <= 100 {
				limit = l
			}
			var venue models.Venue
			if err := db.
				Model(&models.Venue{}).
				Where("id = ?", params.ID).
				First(&venue).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
				return
			}
			decision := auth.Authorize(subjectFrom(ctx), auth.ActionBookingView, auth.Resource{
				Kind:    "venue",
				ID:      venue.ID,
				OwnerID: venue.OwnerID,
			})
			if !decision.Allowed {
				ctx.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
				return
			}
			bookings := make([]models.Booking, 0)
			if err := db.
				Model(&models.Booking{}).
				Where("venue_id = ?", venue.ID).
				Preload("Venue").
				Preload("Table").
				Preload("Payments").
				Order("created_at desc").
				Limit(limit).
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
		}).
		PATCH("/bookings/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateBookingStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var booking models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where("id = ?", params.ID).
				Preload("Venue").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			ownerId := uint(0)
			if booking.Venue != nil {
				ownerId = booking.Venue.OwnerID
			}
			decision := auth.Authorize(subjectFrom(ctx), auth.ActionVenueManage, auth.Resource{
				Kind:    "venue",
				ID:      booking.VenueID,
				OwnerID: ownerId,
			})
			if !decision.Allowed {
				ctx.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
				return
			}
			if err := db.
				Model(&models.Booking{}).
				Where("id = ?", booking.ID).
				Update("status", body.Status).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "booking status updated"})
		})
	return g
}
