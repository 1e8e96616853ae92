package products

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"greenzest/db"
	"greenzest/models"
	"greenzest/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// AddReview appends a review to a product. One review per user per product;
// averageRating and reviewCount are recomputed from the full review list
// before the save, never patched incrementally.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Rating < 1 || body.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	productID := ps.ByName("productid")
	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID, "is_active": true}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	for _, rev := range product.Reviews {
		if rev.UserID == userID {
			utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this product")
			return
		}
	}

	review := models.Review{
		UserID:    userID,
		Username:  utils.GetUsernameFromRequest(r),
		Rating:    body.Rating,
		Comment:   body.Comment,
		CreatedAt: time.Now(),
	}
	product.Reviews = append(product.Reviews, review)
	product.RecomputeRating()

	_, err = db.ProductCollection.UpdateOne(ctx, bson.M{"productid": productID}, bson.M{
		"$set": bson.M{
			"reviews":        product.Reviews,
			"average_rating": product.AverageRating,
			"review_count":   product.ReviewCount,
			"updated_at":     time.Now(),
		},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "review": review})
}
