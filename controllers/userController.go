package controllers

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
	"github.com/PrayerWall/services"
	"github.com/doug-martin/goqu/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenLifetime        = 24 * time.Hour
	maxDisplayNameLength = 50
	maxImageURLLength    = 500
	leaderboardSize      = 10
)

// leaderboardWindows maps a timeFrame to how far back prayers count; "all" has no window.
var leaderboardWindows = map[string]string{
	"all":     "",
	"weekly":  "7 days",
	"monthly": "30 days",
}

func UserSignup(c *gin.Context) {
	var signup models.UserSignup

	if err := c.ShouldBindJSON(&signup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(signup.Email))

	userCount, err := initializers.DB.From("users").Where(goqu.C("email").Eq(email)).CountContext(c)
	if err != nil {
		log.Printf("Failed to check email availability: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if userCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "email is already registered."})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	newUser := models.UserProfile{
		Email:         email,
		Password:      string(passwordHash),
		Display_Name:  strings.TrimSpace(signup.Display_Name),
		Profile_Image: signup.Profile_Image,
		Role:          models.RoleUser,
	}

	var userID int
	insert := initializers.DB.Insert("users").Rows(newUser).Returning("id").Executor()
	if _, err := insert.ScanValContext(c, &userID); err != nil {
		log.Printf("Failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	newUser.User_ID = userID

	go func(email, name string) {
		if err := services.GetEmailService().SendWelcomeEmail(email, name); err != nil {
			log.Printf("Failed to send welcome email to user %d: %v", userID, err)
		}
	}(newUser.Email, newUser.Display_Name)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully.",
		"user":    newUser,
	})
}

func UserLogin(c *gin.Context) {
	var login models.Login

	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dbUser models.UserProfile
	found, err := initializers.DB.From("users").
		Where(goqu.C("email").Eq(strings.ToLower(strings.TrimSpace(login.Email)))).
		ScanStructContext(c, &dbUser)
	if err != nil {
		log.Printf("Failed to fetch user for login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(login.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	generateToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   dbUser.User_ID,
		"exp":  time.Now().Add(tokenLifetime).Unix(),
		"role": dbUser.Role.String(),
	})

	token, err := generateToken.SignedString([]byte(os.Getenv("SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully.",
		"token":   token,
		"user":    dbUser,
	})
}

func GetUserProfile(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"admin": user.Role.CanViewAll(),
	})
}

func StorePushToken(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	var request models.PushTokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(request.PushToken) < 10 || len(request.PushToken) > 500 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid push token"})
		return
	}

	insert := initializers.DB.Insert("user_push_tokens").
		Rows(goqu.Record{
			"user_id":    user.User_ID,
			"push_token": request.PushToken,
			"platform":   request.Platform,
		}).
		OnConflict(goqu.DoUpdate("push_token", goqu.Record{
			"user_id":    user.User_ID,
			"platform":   request.Platform,
			"updated_at": goqu.L("NOW()"),
		}))

	if _, err := insert.Executor().ExecContext(c); err != nil {
		log.Printf("Failed to store push token for user %d: %v", user.User_ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store push token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token stored successfully"})
}

func UpdateUserProfile(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	var update models.UserProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := goqu.Record{}
	if update.Display_Name != nil {
		name := strings.TrimSpace(*update.Display_Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Display name cannot be empty"})
			return
		}
		if utf8.RuneCountInString(name) > maxDisplayNameLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Display name too long"})
			return
		}
		record["display_name"] = name
	}
	if update.Profile_Image != nil {
		if len(*update.Profile_Image) > maxImageURLLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Profile image URL too long"})
			return
		}
		record["profile_image"] = *update.Profile_Image
	}
	if len(record) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No profile fields to update"})
		return
	}

	var updated models.UserProfile
	_, err := initializers.DB.Update("users").
		Set(record).
		Where(goqu.C("id").Eq(user.User_ID)).
		Returning(goqu.Star()).
		Executor().ScanStructContext(c, &updated)
	if err != nil {
		log.Printf("Failed to update profile for user %d: %v", user.User_ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}

func UpdateProfileImage(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	var update models.ProfileImageUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(update.Image_Url) > maxImageURLLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile image URL too long"})
		return
	}

	_, err := initializers.DB.Update("users").
		Set(goqu.Record{"profile_image": update.Image_Url}).
		Where(goqu.C("id").Eq(user.User_ID)).
		Executor().ExecContext(c)
	if err != nil {
		log.Printf("Failed to update profile image for user %d: %v", user.User_ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile image updated successfully"})
}

// GetLeaderboard ranks the top users by prayers logged, optionally within the last week
// or month.
func GetLeaderboard(c *gin.Context) {
	timeFrame := strings.ToLower(c.DefaultQuery("timeFrame", "all"))
	window, ok := leaderboardWindows[timeFrame]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timeFrame must be all, weekly or monthly"})
		return
	}

	query := initializers.DB.From(goqu.T("users").As("u")).
		Select(
			goqu.I("u.id"),
			goqu.I("u.display_name"),
			goqu.I("u.profile_image"),
			goqu.COUNT(goqu.I("p.id")).As("prayer_count"),
		).
		Join(goqu.T("prayers").As("p"), goqu.On(goqu.I("u.id").Eq(goqu.I("p.user_id"))))
	if window != "" {
		query = query.Where(goqu.I("p.prayed_at").Gte(goqu.L("NOW() - INTERVAL '" + window + "'")))
	}

	var leaderboard []models.LeaderboardEntry
	err := query.
		GroupBy(goqu.I("u.id"), goqu.I("u.display_name"), goqu.I("u.profile_image")).
		Order(goqu.I("prayer_count").Desc()).
		Limit(leaderboardSize).
		ScanStructsContext(c, &leaderboard)
	if err != nil {
		log.Printf("Failed to load %s leaderboard: %v", timeFrame, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}
	if leaderboard == nil {
		leaderboard = []models.LeaderboardEntry{}
	}

	c.JSON(http.StatusOK, leaderboard)
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
