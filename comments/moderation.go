package comments

import (
	"context"
	"net/http"
	"time"

	"greenzest/db"
	"greenzest/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// ApproveComment clears the moderation gate. Admin only (enforced in routes).
func ApproveComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	moderate(w, r, ps.ByName("commentid"), bson.M{"is_approved": true, "is_spam": false})
}

// FlagSpam marks a comment as spam, hiding it from public listings.
func FlagSpam(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	moderate(w, r, ps.ByName("commentid"), bson.M{"is_spam": true, "is_approved": false})
}

func moderate(w http.ResponseWriter, r *http.Request, commentID string, set bson.M) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()
	res, err := db.CommentCollection.UpdateOne(ctx, bson.M{"commentid": commentID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to moderate comment")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
