package comments

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"greenzest/db"
	"greenzest/models"
	"greenzest/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateComment adds a new comment, optionally attached to a product or as a
// reply to another comment. New comments start unapproved and stay out of
// public listings until moderated.
func CreateComment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Content   string `json:"content"`
		ProductID string `json:"productid"`
		ParentID  string `json:"parentid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment cannot be empty")
		return
	}

	if body.ParentID != "" {
		err := db.CommentCollection.FindOne(ctx, bson.M{"commentid": body.ParentID}).Err()
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Parent comment not found")
			return
		}
	}

	now := time.Now()
	comment := models.Comment{
		CommentID: utils.GenerateRandomString(16),
		UserID:    userID,
		Username:  utils.GetUsernameFromRequest(r),
		ProductID: body.ProductID,
		ParentID:  body.ParentID,
		Content:   body.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.CommentCollection.InsertOne(ctx, comment); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}

	if body.ParentID != "" {
		_, err := db.CommentCollection.UpdateOne(ctx,
			bson.M{"commentid": body.ParentID},
			bson.M{"$push": bson.M{"replies": comment.CommentID}},
		)
		if err != nil {
			// The reply itself is saved; only the back-reference is missing.
			utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "comment": comment})
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "comment": comment})
}

// GetComments lists comments. Public callers see approved, non-spam comments
// only; admins may pass ?all=true to include everything.
func GetComments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := publicFilter()
	if r.URL.Query().Get("all") == "true" && utils.GetRoleFromRequest(r) == models.RoleAdmin {
		filter = bson.M{}
	}

	listComments(ctx, w, r, filter)
}

// GetProductComments lists approved comments for one product.
func GetProductComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := publicFilter()
	filter["productid"] = ps.ByName("productid")

	listComments(ctx, w, r, filter)
}

func publicFilter() bson.M {
	return bson.M{"is_approved": true, "is_spam": false}
}

func listComments(ctx context.Context, w http.ResponseWriter, r *http.Request, filter bson.M) {
	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := db.CommentCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve comments")
		return
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading comments")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "comments": comments})
}

// UpdateComment edits a comment's content. Author only; editing sends the
// comment back to moderation.
func UpdateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Content) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment cannot be empty")
		return
	}

	res, err := db.CommentCollection.UpdateOne(ctx,
		bson.M{"commentid": ps.ByName("commentid"), "userid": userID},
		bson.M{"$set": bson.M{
			"content":     body.Content,
			"is_approved": false,
			"updatedAt":   time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update comment")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// DeleteComment removes a comment. Author or admin.
func DeleteComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := bson.M{"commentid": ps.ByName("commentid")}
	if utils.GetRoleFromRequest(r) != models.RoleAdmin {
		filter["userid"] = userID
	}

	res, err := db.CommentCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
