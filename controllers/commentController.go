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

func commentsWithUsers() *goqu.SelectDataset {
	return initializers.DB.From(goqu.T("comments").As("c")).
		Select(
			goqu.I("c.id"),
			goqu.I("c.prayer_request_id"),
			goqu.I("c.user_id"),
			goqu.I("c.content"),
			goqu.I("c.created_at"),
			goqu.I("u.display_name"),
			goqu.I("u.profile_image"),
		).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("c.user_id").Eq(goqu.I("u.id"))))
}

// GetPrayerRequestComments returns the comments on a prayer request, oldest first.
func GetPrayerRequestComments(c *gin.Context) {
	prayerRequestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID", "details": err.Error()})
		return
	}

	comments := []models.CommentWithUser{}
	err = commentsWithUsers().
		Where(goqu.I("c.prayer_request_id").Eq(prayerRequestID)).
		Order(goqu.I("c.created_at").Asc()).
		ScanStructsContext(c, &comments)
	if err != nil {
		log.Printf("Failed to fetch comments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

func GetAllComments(c *gin.Context) {
	comments := []models.CommentWithUser{}
	err := commentsWithUsers().
		Order(goqu.I("c.created_at").Desc()).
		ScanStructsContext(c, &comments)
	if err != nil {
		log.Printf("Failed to fetch comments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// CreateComment adds a comment as the authenticated user and lets the engagement
// hooks notify the request owner.
func CreateComment(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	var commentCreate models.CommentCreate
	if err := c.ShouldBindJSON(&commentCreate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := strings.TrimSpace(commentCreate.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content cannot be empty"})
		return
	}

	newComment := models.Comment{
		Prayer_Request_ID: commentCreate.Prayer_Request_ID,
		User_ID:           user.User_ID,
		Content:           content,
	}

	var created models.Comment
	insert := initializers.DB.Insert("comments").
		Rows(newComment).
		Returning(goqu.Star()).
		Executor()
	if _, err := insert.ScanStructContext(c, &created); err != nil {
		log.Printf("Failed to create comment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if Engagement != nil {
		logOutcome(Engagement.OnCommentCreated(c, created, &user.User_ID))
	}

	c.JSON(http.StatusCreated, created)
}

func fetchComment(c *gin.Context, commentID int) (*models.Comment, error) {
	var comment models.Comment
	found, err := initializers.DB.From("comments").
		Where(goqu.C("id").Eq(commentID)).
		ScanStructContext(c, &comment)
	if err != nil || !found {
		return nil, err
	}
	return &comment, nil
}

func UpdateComment(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID", "details": err.Error()})
		return
	}

	var update models.CommentUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := fetchComment(c, commentID)
	if err != nil {
		log.Printf("Failed to fetch comment %d: %v", commentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if !user.CanManage(&existing.User_ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own comments"})
		return
	}

	content := strings.TrimSpace(update.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content cannot be empty"})
		return
	}

	_, err = initializers.DB.Update("comments").
		Set(goqu.Record{"content": content}).
		Where(goqu.C("id").Eq(commentID)).
		Executor().ExecContext(c)
	if err != nil {
		log.Printf("Failed to update comment %d: %v", commentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	existing.Content = content
	c.JSON(http.StatusOK, existing)
}

func DeleteComment(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID", "details": err.Error()})
		return
	}

	existing, err := fetchComment(c, commentID)
	if err != nil {
		log.Printf("Failed to fetch comment %d: %v", commentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if !user.CanManage(&existing.User_ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	_, err = initializers.DB.Delete("comments").
		Where(goqu.C("id").Eq(commentID)).
		Executor().ExecContext(c)
	if err != nil {
		log.Printf("Failed to delete comment %d: %v", commentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
