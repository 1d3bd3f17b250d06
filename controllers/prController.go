package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
	"github.com/doug-martin/goqu/v9"
)

func boolOr(value *bool, fallback bool) *bool {
	if value != nil {
		return value
	}
	return &fallback
}

func fetchPrayerRequest(c *gin.Context, prayerRequestID int) (*models.PrayerRequest, error) {
	var prayerRequest models.PrayerRequest
	found, err := initializers.DB.From("prayer_requests").
		Where(goqu.C("id").Eq(prayerRequestID)).
		ScanStructContext(c, &prayerRequest)
	if err != nil || !found {
		return nil, err
	}
	return &prayerRequest, nil
}

// GetPrayerRequests lists prayer requests newest first with their prayer counts.
// The requester's name is withheld for anonymous requests.
func GetPrayerRequests(c *gin.Context) {
	query := initializers.DB.From(goqu.T("prayer_requests").As("pr")).
		Select(
			goqu.I("pr.id"),
			goqu.I("pr.requester_id"),
			goqu.I("pr.name"),
			goqu.I("pr.content"),
			goqu.I("pr.category"),
			goqu.I("pr.is_visible"),
			goqu.I("pr.is_anonymous"),
			goqu.I("pr.is_answered"),
			goqu.I("pr.answer_content"),
			goqu.I("pr.created_at"),
			goqu.Case().
				When(goqu.I("pr.is_anonymous").IsTrue(), nil).
				Else(goqu.I("u.display_name")).
				As("requester_name"),
			goqu.COUNT(goqu.I("p.id")).As("prayer_count"),
		).
		LeftJoin(goqu.T("prayers").As("p"), goqu.On(goqu.I("p.prayer_request_id").Eq(goqu.I("pr.id")))).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("pr.requester_id")))).
		GroupBy(goqu.I("pr.id"), goqu.I("u.display_name")).
		Order(goqu.I("pr.created_at").Desc())

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where(goqu.I("pr.category").Eq(category))
	}

	if answered := c.Query("isAnswered"); answered != "" {
		isAnswered, err := strconv.ParseBool(answered)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid isAnswered filter", "details": err.Error()})
			return
		}
		query = query.Where(goqu.I("pr.is_answered").Eq(isAnswered))
	}

	prayerRequests := []models.PrayerRequestWithStats{}
	if err := query.ScanStructsContext(c, &prayerRequests); err != nil {
		log.Printf("Failed to fetch prayer requests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer requests"})
		return
	}

	c.JSON(http.StatusOK, prayerRequests)
}

func GetPrayerRequest(c *gin.Context) {
	prayerRequestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	prayerRequest, err := fetchPrayerRequest(c, prayerRequestID)
	if err != nil {
		log.Printf("Failed to fetch prayer request %d: %v", prayerRequestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer request"})
		return
	}

	if prayerRequest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	c.JSON(http.StatusOK, prayerRequest)
}

// CreatePrayerRequest stores a new request. Anonymous callers cannot name a requester.
func CreatePrayerRequest(c *gin.Context) {
	user := currentUser(c)

	var prayerRequestCreate models.PrayerRequestCreate
	if err := c.ShouldBindJSON(&prayerRequestCreate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newPrayerRequest := models.PrayerRequest{
		Requester_ID:   actorID(user),
		Name:           strings.TrimSpace(prayerRequestCreate.Name),
		Content:        prayerRequestCreate.Content,
		Category:       prayerRequestCreate.Category,
		Is_Visible:     boolOr(prayerRequestCreate.Is_Visible, true),
		Is_Anonymous:   boolOr(prayerRequestCreate.Is_Anonymous, false),
		Is_Answered:    boolOr(prayerRequestCreate.Is_Answered, false),
		Answer_Content: prayerRequestCreate.Answer_Content,
	}

	var created models.PrayerRequest
	insert := initializers.DB.Insert("prayer_requests").
		Rows(newPrayerRequest).
		Returning(goqu.Star()).
		Executor()
	if _, err := insert.ScanStructContext(c, &created); err != nil {
		log.Printf("Failed to create prayer request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prayer request"})
		return
	}

	if Engagement != nil {
		logOutcome(Engagement.OnPrayerRequestCreated(c, created, created.Requester_ID))
	}

	c.JSON(http.StatusCreated, created)
}

func UpdatePrayerRequest(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	prayerRequestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	var update models.PrayerRequestCreate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := fetchPrayerRequest(c, prayerRequestID)
	if err != nil {
		log.Printf("Failed to fetch prayer request %d: %v", prayerRequestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prayer request"})
		return
	}

	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	if !user.CanManage(existing.Requester_ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to update this prayer request"})
		return
	}

	existing.Name = strings.TrimSpace(update.Name)
	existing.Content = update.Content
	existing.Category = update.Category
	existing.Is_Visible = boolOr(update.Is_Visible, true)
	existing.Is_Anonymous = boolOr(update.Is_Anonymous, false)
	existing.Is_Answered = boolOr(update.Is_Answered, false)
	existing.Answer_Content = update.Answer_Content

	_, err = initializers.DB.Update("prayer_requests").
		Set(goqu.Record{
			"name":           existing.Name,
			"content":        existing.Content,
			"category":       existing.Category,
			"is_visible":     existing.Is_Visible,
			"is_anonymous":   existing.Is_Anonymous,
			"is_answered":    existing.Is_Answered,
			"answer_content": existing.Answer_Content,
		}).
		Where(goqu.C("id").Eq(prayerRequestID)).
		Executor().ExecContext(c)
	if err != nil {
		log.Printf("Failed to update prayer request %d: %v", prayerRequestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prayer request"})
		return
	}

	c.JSON(http.StatusOK, existing)
}

// DeletePrayerRequest removes the request together with its prayers and comments.
func DeletePrayerRequest(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	prayerRequestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	existing, err := fetchPrayerRequest(c, prayerRequestID)
	if err != nil {
		log.Printf("Failed to fetch prayer request %d: %v", prayerRequestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer request"})
		return
	}

	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	if !user.CanManage(existing.Requester_ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this prayer request"})
		return
	}

	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		for _, table := range []string{"prayers", "comments"} {
			_, err := tx.Delete(table).
				Where(goqu.C("prayer_request_id").Eq(prayerRequestID)).
				Executor().ExecContext(c)
			if err != nil {
				return err
			}
		}
		_, err := tx.Delete("prayer_requests").
			Where(goqu.C("id").Eq(prayerRequestID)).
			Executor().ExecContext(c)
		return err
	})
	if err != nil {
		log.Printf("Failed to delete prayer request %d: %v", prayerRequestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer request deleted successfully"})
}
