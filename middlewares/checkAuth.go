package middlewares

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

type authError struct {
	status  int
	message string
}

// authenticate resolves the bearer token in the Authorization header to a user.
func authenticate(c *gin.Context, authHeader string) (models.UserProfile, *authError) {
	var user models.UserProfile

	authToken := strings.Split(authHeader, " ")
	if len(authToken) != 2 || authToken[0] != "Bearer" {
		return user, &authError{http.StatusUnauthorized, "Invalid token format"}
	}

	token, err := jwt.Parse(authToken[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("SECRET")), nil
	})
	if err != nil || !token.Valid {
		return user, &authError{http.StatusUnauthorized, "Invalid or expired token"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return user, &authError{http.StatusUnauthorized, "Invalid token"}
	}

	// MapClaims.Valid already rejects expired tokens; a missing exp is rejected here.
	if _, ok := claims["exp"].(float64); !ok {
		return user, &authError{http.StatusUnauthorized, "token expired"}
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return user, &authError{http.StatusUnauthorized, "Invalid token"}
	}

	found, err := initializers.DB.From("users").
		Where(goqu.C("id").Eq(int(id))).
		ScanStructContext(c.Request.Context(), &user)
	if err != nil {
		return user, &authError{http.StatusInternalServerError, "Failed to load user profile"}
	}
	if !found {
		return user, &authError{http.StatusUnauthorized, "User not found"}
	}

	return user, nil
}

// CheckAuth requires a valid bearer token and stores the user as "currentUser".
func CheckAuth(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		return
	}

	user, authErr := authenticate(c, authHeader)
	if authErr != nil {
		c.AbortWithStatusJSON(authErr.status, gin.H{"error": authErr.message})
		return
	}

	c.Set("currentUser", user)
	c.Next()
}

// OptionalAuth lets requests without an Authorization header through anonymously.
// A header that is present must still be valid.
func OptionalAuth(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.Next()
		return
	}

	user, authErr := authenticate(c, authHeader)
	if authErr != nil {
		c.AbortWithStatusJSON(authErr.status, gin.H{"error": authErr.message})
		return
	}

	c.Set("currentUser", user)
	c.Next()
}
