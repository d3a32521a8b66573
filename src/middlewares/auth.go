package middlewares

import (
	"log"
	"os"
	"strconv"
	"strings"
	"venuebook/src/models"
	"venuebook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// AuthMiddleware validates the bearer token and resolves the user row so
// downstream handlers get identity from the context, never from the token
// alone. Deactivated users are rejected here.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer") {
			ctx.AbortWithStatus(401)
			return
		}
		parts := strings.Split(bearerToken, " ")
		if len(parts) != 2 || parts[1] == "" {
			ctx.AbortWithStatus(401)
			return
		}
		reqToken := parts[1]
		claims := &types.Claims{}
		tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
			return jwtKey, nil
		})
		if err != nil {
			log.Printf("token error: %s\n", err.Error())
			ctx.AbortWithStatus(401)
			return
		}
		if !tkn.Valid {
			ctx.AbortWithStatus(401)
			return
		}

		uid, err := strconv.Atoi(claims.Subject)
		if err != nil {
			log.Println("error parsing claims:", err.Error())
			ctx.AbortWithStatus(401)
			return
		}
		var user models.User
		if err := db.
			Model(&models.User{}).
			Where(&models.User{ID: uint(uid)}).
			First(&user).
			Error; err != nil {
			ctx.AbortWithStatus(401)
			return
		}
		if !user.IsActive {
			ctx.AbortWithStatus(401)
			return
		}
		ctx.Set("email", user.Email)
		ctx.Set("id", user.ID)
		ctx.Set("role", string(user.Role))
	}
}
