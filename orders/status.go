package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"greenzest/db"
	"greenzest/models"
	"greenzest/mq"
	"greenzest/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var statusMessages = map[string]string{
	models.StatusProcessing: "Your order %s is being prepared.",
	models.StatusShipped:    "Your order %s is on its way.",
	models.StatusDelivered:  "Your order %s has been delivered.",
	models.StatusCancelled:  "Your order %s has been cancelled.",
}

// CancelOrder cancels a non-terminal order and restores each line item's
// stock. Owner or admin.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	order, ok := loadOrderAuthorized(ctx, w, r, ps.ByName("orderid"))
	if !ok {
		return
	}

	if !models.CanTransition(order.Status, models.StatusCancelled) {
		utils.RespondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Order in status %q cannot be cancelled", order.Status))
		return
	}

	// The status filter makes the flip atomic: a concurrent cancel or
	// delivery wins and this request reports the conflict.
	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": order.OrderID, "status": order.Status},
		bson.M{"$set": bson.M{"status": models.StatusCancelled, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Order status changed, try again")
		return
	}

	releaseStock(ctx, order.Items)

	mq.Emit(ctx, models.Notification{
		UserID:  order.UserID,
		Type:    models.NotifOrderStatus,
		Title:   "Order cancelled",
		Message: fmt.Sprintf(statusMessages[models.StatusCancelled], order.OrderNumber),
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Order cancelled"})
}

// UpdateOrderStatus transitions an order. Admin only; terminal states are
// frozen. Moving to cancelled through this route also restores stock.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Status is required")
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": ps.ByName("orderid")}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !models.CanTransition(order.Status, body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Cannot move order from %q to %q", order.Status, body.Status))
		return
	}

	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": order.OrderID, "status": order.Status},
		bson.M{"$set": bson.M{"status": body.Status, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Order status changed, try again")
		return
	}

	if body.Status == models.StatusCancelled {
		releaseStock(ctx, order.Items)
	}

	if tmpl, ok := statusMessages[body.Status]; ok {
		mq.Emit(ctx, models.Notification{
			UserID:  order.UserID,
			Type:    models.NotifOrderStatus,
			Title:   "Order update",
			Message: fmt.Sprintf(tmpl, order.OrderNumber),
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": body.Status})
}
