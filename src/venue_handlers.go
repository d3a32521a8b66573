package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"venuebook/src/lib"
	"venuebook/src/models"
	"venuebook/src/types"
	"venuebook/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const venueCitiesCacheKey = "venues:cities"

// venueCities returns the distinct, non-empty, sorted cities among active
// venues. The list only changes on venue mutation so it is cached in redis;
// admin venue writes drop the key.
func venueCities(db *gorm.DB) []string {
	rd := lib.GetRedisClient()
	var cities []string
	if rd != nil {
		val := rd.JSONGet(context.Background(), venueCitiesCacheKey).Val()
		if val != "" {
			if err := json.Unmarshal([]byte(val), &cities); err == nil {
				return cities
			}
		}
	}
	if err := db.
		Model(&models.Venue{}).
		Where("is_active = ?", true).
		Where("city <> ''").
		Distinct().
		Order("city asc").
		Pluck("city", &cities).
		Error; err != nil {
		log.Printf("Error retrieving venue cities: %s\n", err.Error())
		return []string{}
	}
	if rd != nil {
		rd.JSONSet(context.Background(), venueCitiesCacheKey, "$", cities)
	}
	return cities
}

func invalidateVenueCaches() {
	rd := lib.GetRedisClient()
	if rd != nil {
		rd.Del(context.Background(), venueCitiesCacheKey)
	}
}

func venueDirectoryRoutes(g *gin.Engine, db *gorm.DB) *gin.RouterGroup {
	api := apiGroup(g)
	api.
		GET("/venues", func(ctx *gin.Context) {
			var filters types.VenueQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if filters.Page < 1 {
				filters.Page = 1
			}
			if filters.Limit < 1 {
				filters.Limit = 12
			}

			query := db.Model(&models.Venue{}).Where("is_active = ?", true)
			if filters.Search != "" {
				like := "%" + filters.Search + "%"
				query = query.Where("name ILIKE ? OR description ILIKE ? OR cuisine ILIKE ?", like, like, like)
			}
			// "all" is a sentinel disabling the filter
			if filters.City != "" && filters.City != "all" {
				query = query.Where("city = ?", filters.City)
			}
			if filters.VenueType != "" && filters.VenueType != "all" {
				query = query.Where("venue_type = ?", filters.VenueType)
			}

			var total int64
			if err := query.Count(&total).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			venues := make([]models.Venue, 0)
			if err := query.
				Order("created_at desc").
				Offset((filters.Page - 1) * filters.Limit).
				Limit(filters.Limit).
				Find(&venues).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			ctx.JSON(http.StatusOK, gin.H{
				"venues": venues,
				"cities": venueCities(db),
				"pagination": types.Pagination{
					Page:  filters.Page,
					Limit: filters.Limit,
					Total: total,
					Pages: utils.PageCount(total, filters.Limit),
				},
			})
		}).
		GET("/venues/featured", func(ctx *gin.Context) {
			venues := make([]models.Venue, 0)
			if err := db.
				Model(&models.Venue{}).
				Where(&models.Venue{IsActive: true, Featured: true}).
				Order("created_at desc").
				Limit(3).
				Find(&venues).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"venues": venues})
		})

	public := api.Group("/public")
	registerPublicVenueDetail(public, db)
	return api
}

func registerPublicVenueDetail(public *gin.RouterGroup, db *gorm.DB) {
	public.
		GET("/venues/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var venue models.Venue
			if err := db.
				Model(&models.Venue{}).
				Where("id = ? AND is_active = ?", params.ID, true).
				Preload("Tables", "is_active = ?", true).
				Preload("Images", "is_active = ?", true).
				First(&venue).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"venue": venue})
		})
}

type createVenueRequestBody struct {
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Description string `json:"description,omitempty"`
	Cuisine     string `json:"cuisine,omitempty"`
	City        string `json:"city,omitempty"`
	VenueType   string `json:"venueType,omitempty"`
	Capacity    uint   `json:"capacity,omitempty"`
	BrandColor  string `json:"brandColor,omitempty" binding:"omitempty,hexcolor"`
	LogoURL     string `json:"logoUrl,omitempty" binding:"omitempty,url"`
}

// ownerVenueRoutes lets authenticated users register and maintain venues
// they own.
func ownerVenueRoutes(g *gin.RouterGroup, db *gorm.DB) *gin.RouterGroup {
	g.
		POST("/venues", func(ctx *gin.Context) {
			var body createVenueRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			venueType := body.VenueType
			if venueType == "" {
				venueType = "restaurant"
			}
			venue := models.Venue{
				Name:        body.Name,
				Description: body.Description,
				Cuisine:     body.Cuisine,
				City:        body.City,
				VenueType:   venueType,
				Capacity:    body.Capacity,
				BrandColor:  body.BrandColor,
				LogoURL:     body.LogoURL,
				OwnerID:     ctx.GetUint("id"),
				IsActive:    true,
			}
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&venue).Error; err != nil {
					return err
				}
				// first venue promotes a customer to venue owner
				return tx.
					Model(&models.User{}).
					Where("id = ? AND role = ?", venue.OwnerID, types.ROLE_CUSTOMER).
					Update("role", types.ROLE_VENUE_OWNER).
					Error
			})
			if err != nil {
				log.Printf("Error creating venue: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			invalidateVenueCaches()
			ctx.JSON(http.StatusOK, gin.H{"venue": venue})
		})
	return g
}
