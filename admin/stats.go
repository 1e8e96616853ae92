package admin

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"greenzest/db"
	"greenzest/models"
	"greenzest/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const lowStockThreshold = 5

// GetStats computes dashboard totals: user/product/order counts, revenue
// over non-cancelled orders, low-stock products and per-category counts.
// Full collection scans, reduced in memory.
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userCount, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	products, err := allProducts(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	orders, err := allOrders(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	var revenue float64
	for _, o := range orders {
		if o.Status != models.StatusCancelled {
			revenue += o.Total
		}
	}

	var lowStock []models.Product
	categoryCounts := map[string]int{}
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		categoryCounts[p.Category]++
		if p.Stock <= lowStockThreshold {
			lowStock = append(lowStock, p)
		}
	}
	if lowStock == nil {
		lowStock = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":         true,
		"users":           userCount,
		"products":        len(products),
		"orders":          len(orders),
		"revenue":         revenue,
		"low_stock":       lowStock,
		"category_counts": categoryCounts,
	})
}

type dayBucket struct {
	Day     string  `json:"day"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// GetAnalytics buckets orders and revenue by calendar day over a ?days=N
// window (default 30) and ranks products by units sold.
func GetAnalytics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days < 1 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	orders, err := allOrders(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	buckets := map[string]*dayBucket{}
	unitsByProduct := map[string]int{}
	nameByProduct := map[string]string{}
	for _, o := range orders {
		if o.Status == models.StatusCancelled {
			continue
		}
		day := o.CreatedAt.Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &dayBucket{Day: day}
			buckets[day] = b
		}
		b.Orders++
		b.Revenue += o.Total

		for _, it := range o.Items {
			unitsByProduct[it.ProductID] += it.Quantity
			nameByProduct[it.ProductID] = it.Name
		}
	}

	series := make([]dayBucket, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Day < series[j].Day })

	type topProduct struct {
		ProductID string `json:"productid"`
		Name      string `json:"name"`
		Units     int    `json:"units"`
	}
	top := make([]topProduct, 0, len(unitsByProduct))
	for id, units := range unitsByProduct {
		top = append(top, topProduct{ProductID: id, Name: nameByProduct[id], Units: units})
	}
	sort.Slice(top, func(i, j int) bool { return top[i].Units > top[j].Units })
	if len(top) > 10 {
		top = top[:10]
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":      true,
		"days":         days,
		"daily":        series,
		"top_products": top,
	})
}

func allProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := db.ProductCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func allOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := db.OrderCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
