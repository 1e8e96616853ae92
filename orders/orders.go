package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"greenzest/db"
	"greenzest/models"
	"greenzest/mq"
	"greenzest/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderInput struct {
	Items []struct {
		ProductID string `json:"productid"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	PaymentMethod string                 `json:"payment_method"`
	Shipping      models.ShippingAddress `json:"shipping"`
}

// PlaceOrder validates the cart, reserves stock item by item with
// conditional decrements, persists the order with a sequential order number
// and fires the confirmation/loyalty side effects best-effort.
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in orderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order payload")
		return
	}
	if len(in.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order has no items")
		return
	}
	if !models.PaymentMethods[in.PaymentMethod] {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown payment method")
		return
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Each item needs a product and a quantity of at least 1")
			return
		}
	}

	// Reserve stock with a conditional $inc per item; the stock >= qty match
	// makes each decrement a compare-and-swap, so two concurrent orders can
	// never take the same units. On failure, give back what was already
	// reserved.
	var items []models.OrderItem
	for _, it := range in.Items {
		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": it.ProductID, "is_active": true}).Decode(&product)
		if err != nil {
			releaseStock(ctx, items)
			utils.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("Product %s not found", it.ProductID))
			return
		}

		res, err := db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": it.ProductID, "stock": bson.M{"$gte": it.Quantity}},
			bson.M{"$inc": bson.M{"stock": -it.Quantity}},
		)
		if err != nil || res.ModifiedCount == 0 {
			releaseStock(ctx, items)
			utils.RespondWithError(w, http.StatusConflict, fmt.Sprintf("Insufficient stock for %s", product.Name))
			return
		}

		item := models.OrderItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Price:     product.EffectivePrice(),
			Quantity:  it.Quantity,
		}
		items = append(items, item)
	}

	seq, err := db.NextSequence(ctx, "orders")
	if err != nil {
		releaseStock(ctx, items)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order creation failed")
		return
	}

	now := time.Now()
	order := models.Order{
		OrderID:       utils.GenerateRandomString(16),
		OrderNumber:   models.FormatOrderNumber(seq),
		UserID:        userID,
		Items:         items,
		Total:         models.ComputeTotal(items),
		Status:        models.StatusPending,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: "pending",
		Shipping:      in.Shipping,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		log.Println("PlaceOrder InsertOne error:", err)
		releaseStock(ctx, items)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order creation failed")
		return
	}

	// Everything past this point is best-effort: the order stands even if
	// loyalty accounting or notifications fail.
	creditUser(ctx, userID, order)

	mq.Emit(ctx, models.Notification{
		UserID:  userID,
		Type:    models.NotifOrderPlaced,
		Title:   "Order confirmed",
		Message: fmt.Sprintf("Your order %s has been placed.", order.OrderNumber),
	})

	if pts := models.LoyaltyPointsFor(order.Total); pts > 0 {
		mq.Emit(ctx, models.Notification{
			UserID:  userID,
			Type:    models.NotifLoyalty,
			Title:   "Loyalty points earned",
			Message: fmt.Sprintf("You earned %d loyalty points on order %s.", pts, order.OrderNumber),
		})
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "order": order})
}

// releaseStock undoes reserved decrements after a failed placement.
func releaseStock(ctx context.Context, reserved []models.OrderItem) {
	for _, it := range reserved {
		_, err := db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": it.ProductID},
			bson.M{"$inc": bson.M{"stock": it.Quantity}},
		)
		if err != nil {
			log.Printf("releaseStock: failed to restore %d units of %s: %v", it.Quantity, it.ProductID, err)
		}
	}
}

// creditUser applies loyalty points and environmental-impact accumulators
// for a placed order, then re-derives the tier from the fresh point total.
func creditUser(ctx context.Context, userID string, order models.Order) {
	pts := models.LoyaltyPointsFor(order.Total)
	co2, water, units := models.EstimateImpact(order.Items)

	_, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{
		"$inc": bson.M{
			"loyalty_points": pts,
			"co2_saved":      co2,
			"water_saved":    water,
			"units_recycled": units,
		},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		log.Printf("creditUser: loyalty update failed for %s: %v", userID, err)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		log.Printf("creditUser: reload failed for %s: %v", userID, err)
		return
	}
	tier := models.ComputeTier(user.LoyaltyPoints)
	if tier != user.Tier {
		_, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": bson.M{"tier": tier}})
		if err != nil {
			log.Printf("creditUser: tier update failed for %s: %v", userID, err)
		}
	}
}

// GetOrders lists the requesting user's orders, newest first.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := db.OrderCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": orders})
}

// GetOrder returns one order; owners see their own, admins see any.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, ok := loadOrderAuthorized(ctx, w, r, ps.ByName("orderid"))
	if !ok {
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "order": order})
}

// loadOrderAuthorized fetches an order and enforces owner-or-admin access.
// It writes the error response itself and reports success via ok.
func loadOrderAuthorized(ctx context.Context, w http.ResponseWriter, r *http.Request, orderID string) (models.Order, bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return models.Order{}, false
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return models.Order{}, false
	}

	if order.UserID != userID && utils.GetRoleFromRequest(r) != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return models.Order{}, false
	}
	return order, true
}
