package main

import (
	"fmt"
	"log"
	"net/http"
	"venuebook/src/auth"
	"venuebook/src/config"
	"venuebook/src/models"
	"venuebook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// buildEmbedSnippet synthesizes the iframe pointing at the per-venue widget
// page rooted at the configured application base URL.
func buildEmbedSnippet(baseURL string, venueId uint, widgetKey uuid.UUID, theme string) string {
	return fmt.Sprintf(
		`<iframe src="%s/widget/%d?key=%s&theme=%s" width="100%%" height="600" frameborder="0" title="Book a table"></iframe>`,
		baseURL, venueId, widgetKey.String(), theme,
	)
}

func widgetRoutes(g *gin.RouterGroup, db *gorm.DB) *gin.RouterGroup {
	g.
		POST("/widgets", func(ctx *gin.Context) {
			var body types.CreateWidgetRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var venue models.Venue
			if err := db.
				Model(&models.Venue{}).
				Where("id = ?", body.VenueID).
				First(&venue).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
				return
			}
			decision := auth.Authorize(subjectFrom(ctx), auth.ActionWidgetIssue, auth.Resource{
				Kind:    "venue",
				ID:      venue.ID,
				OwnerID: venue.OwnerID,
			})
			if !decision.Allowed {
				ctx.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
				return
			}
			theme := body.Theme
			if theme == "" {
				theme = "light"
			}
			widget := models.Widget{
				VenueID:      venue.ID,
				Name:         body.Name,
				WidgetKey:    uuid.New(),
				Theme:        theme,
				PrimaryColor: body.PrimaryColor,
				IsActive:     true,
			}
			widget.EmbedSnippet = buildEmbedSnippet(config.AppBaseURL(), venue.ID, widget.WidgetKey, theme)
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&widget).Error
			}); err != nil {
				log.Printf("Error creating widget for venue %d: %s\n", venue.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"widget": widget})
		}).
		GET("/widgets", func(ctx *gin.Context) {
			var query struct {
				VenueID uint `form:"venueId" binding:"required"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var venue models.Venue
			if err := db.
				Model(&models.Venue{}).
				Where("id = ?", query.VenueID).
				First(&venue).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
				return
			}
			decision := auth.Authorize(subjectFrom(ctx), auth.ActionWidgetIssue, auth.Resource{
				Kind:    "venue",
				ID:      venue.ID,
				OwnerID: venue.OwnerID,
			})
			if !decision.Allowed {
				ctx.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
				return
			}
			widgets := make([]models.Widget, 0)
			if err := db.
				Model(&models.Widget{}).
				Where("venue_id = ?", venue.ID).
				Order("created_at desc").
				Find(&widgets).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"widgets": widgets, "count": len(widgets)})
		})
	return g
}
