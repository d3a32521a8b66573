package main

import (
	"log"
	"net/http"
	"venuebook/src/auth"
	"venuebook/src/models"
	"venuebook/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func subjectFrom(ctx *gin.Context) auth.Subject {
	return auth.Subject{
		UserID: ctx.GetUint("id"),
		Role:   types.Role(ctx.GetString("role")),
	}
}

// deleteVenueCascade removes a venue and its dependent rows. Payments are
// never deleted; bookings they reference are detached first.
func deleteVenueCascade(tx *gorm.DB, venueId uint) error {
	var bookingIds []uint
	if err := tx.
		Model(&models.Booking{}).
		Where("venue_id = ?", venueId).
		Pluck("id", &bookingIds).
		Error; err != nil {
		return err
	}
	if len(bookingIds) > 0 {
		if err := tx.
			Model(&models.Payment{}).
			Where("booking_id IN (?)", bookingIds).
			Update("booking_id", nil).
			Error; err != nil {
			return err
		}
		if err := tx.Where("venue_id = ?", venueId).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
	}
	for _, model := range []any{&models.Widget{}, &models.VenueImage{}, &models.VenueTable{}} {
		if err := tx.Where("venue_id = ?", venueId).Delete(model).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&models.Venue{}, venueId).Error
}

func adminRoutes(g *gin.RouterGroup, db *gorm.DB) *gin.RouterGroup {
	admin := g.Group("/admin")

	admin.
		GET("/users", func(ctx *gin.Context) {
			decision := auth.Authorize(subjectFrom(ctx), auth.ActionUserRead, auth.Resource{Kind: "user"})
			if !decision.Allowed {
				ctx.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
				return
			}
			query := db.Model(&models.User{})
			if role := ctx.Query("role"); role != "" && role != "all" {
				query = query.Where("role = ?", role)
			}
			users := make([]models.User, 0)
			if err := query.Order("created_at desc").Find(&users).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
		}).
		GET("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			decision := auth.Authorize(subjectFrom(ctx), auth.ActionUserRead, auth.Resource{Kind: "user", ID: params.ID})
			if !decision.Allowed {
				ctx.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
				return
			}
			var user models.User
			if err := db.
				Model(&models.User{}).
				Where("id = ?", params.ID).
				Preload("Venues").
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"user": user})
		}).
		DELETE("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var user models.User
			if err := db.
				Model(&models.User{}).
				Where("id = ?", params.ID).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			// guard runs before anything destructive
			decision := auth.Authorize(subjectFrom(ctx), auth.ActionUserDelete, auth.Resource{
				Kind:       "user",
				ID:         user.ID,
				TargetRole: user.Role,
			})
			if !decision.Allowed {
				ctx.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
				return
			}
			err := db.Transaction(func(tx *gorm.DB) error {
				var venueIds []uint
				if err := tx.
					Model(&models.Venue{}).
					Where("owner_id = ?", user.ID).
					Pluck("id", &venueIds).
					Error; err != nil {
					return err
				}
				for _, venueId := range venueIds {
					if err := deleteVenueCascade(tx, venueId); err != nil {
						return err
					}
				}
				if err := tx.Where("user_id = ?", user.ID).Delete(&models.Notification{}).Error; err != nil {
					return err
				}
				return tx.Delete(&models.User{}, user.ID).Error
			})
			if err != nil {
				log.Printf("Error deleting user %d: %s\n", user.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			invalidateVenueCaches()
			ctx.JSON(http.StatusOK, gin.H{"message": "user deleted"})
		}).
		PATCH("/users/:id/toggle-status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ToggleUserStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var user models.User
			if err := db.
				Model(&models.User{}).
				Where("id = ?", params.ID).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			action := auth.ActionUserEnable
			if !*body.IsActive {
				action = auth.ActionUserDisable
			}
			decision := auth.Authorize(subjectFrom(ctx), action, auth.Resource{
				Kind:       "user",
				ID:         user.ID,
				TargetRole: user.Role,
			})
			if !decision.Allowed {
				ctx.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
				return
			}
			if err := db.
				Model(&models.User{}).
				Where("id = ?", user.ID).
				Update("is_active", *body.IsActive).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			user.IsActive = *body.IsActive
			ctx.JSON(http.StatusOK, gin.H{"message": "user status updated", "user": user})
		})

	admin.
		GET("/venues/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			decision := auth.Authorize(subjectFrom(ctx), auth.ActionVenueRead, auth.Resource{Kind: "venue", ID: params.ID})
			if !decision.Allowed {
				ctx.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
				return
			}
			var venue models.Venue
			if err := db.
				Model(&models.Venue{}).
				Where("id = ?", params.ID).
				Preload("Tables").
				Preload("Images").
				Preload("Widgets").
				First(&venue).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"venue": venue})
		}).
		DELETE("/venues/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
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
			decision := auth.Authorize(subjectFrom(ctx), auth.ActionVenueDelete, auth.Resource{
				Kind:    "venue",
				ID:      venue.ID,
				OwnerID: venue.OwnerID,
			})
			if !decision.Allowed {
				ctx.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
				return
			}
			if err := db.Transaction(func(tx *gorm.DB) error {
				return deleteVenueCascade(tx, venue.ID)
			}); err != nil {
				log.Printf("Error deleting venue %d: %s\n", venue.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			invalidateVenueCaches()
			ctx.JSON(http.StatusOK, gin.H{"message": "venue deleted"})
		})
	return admin
}
