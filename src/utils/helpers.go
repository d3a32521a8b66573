package utils

import (
	"math"
	"os"
	"strconv"
	"time"
	"venuebook/src/types"

	"github.com/golang-jwt/jwt/v4"
)

func GenerateJWT(email string, userId uint, role types.Role) (string, error) {
	claims := types.Claims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userId)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// PageCount computes the page count for a paginated listing.
func PageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}
