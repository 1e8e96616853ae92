package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"greenzest/db"
	"greenzest/models"
	"greenzest/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productImageDir = "./static/productpic"

type productInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	SalePrice   float64 `json:"sale_price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	IsFeatured  bool    `json:"is_featured"`
	OnSale      bool    `json:"on_sale"`
}

func (in *productInput) validate() []string {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	}
	if in.Price < 0 {
		errs = append(errs, "price must not be negative")
	}
	if in.Stock < 0 {
		errs = append(errs, "stock must not be negative")
	}
	if !models.ProductCategories[in.Category] {
		errs = append(errs, "unknown category")
	}
	return errs
}

// CreateProduct adds a catalog entry. Admin only.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		utils.RespondWithValidation(w, errs)
		return
	}

	now := time.Now()
	product := models.Product{
		ProductID:   utils.GenerateRandomString(16),
		SKU:         "GZ-" + strings.ToUpper(uuid.New().String()[:8]),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		SalePrice:   in.SalePrice,
		Category:    in.Category,
		Stock:       in.Stock,
		IsActive:    true,
		IsFeatured:  in.IsFeatured,
		OnSale:      in.OnSale,
		Reviews:     []models.Review{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "product": product})
}

// EditProduct updates catalog fields. Stock set here is an absolute
// correction; order flow adjusts stock with $inc separately.
func EditProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		utils.RespondWithValidation(w, errs)
		return
	}

	update := bson.M{"$set": bson.M{
		"name":        strings.TrimSpace(in.Name),
		"description": in.Description,
		"price":       in.Price,
		"sale_price":  in.SalePrice,
		"category":    in.Category,
		"stock":       in.Stock,
		"is_featured": in.IsFeatured,
		"on_sale":     in.OnSale,
		"updated_at":  time.Now(),
	}}

	res, err := db.ProductCollection.UpdateOne(ctx, bson.M{"productid": ps.ByName("productid")}, update)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Product updated"})
}

// DeleteProduct soft-deletes: the entry stays for historical order snapshots
// but disappears from every public listing.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": ps.ByName("productid")},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Product deleted"})
}

// GetAllProducts lists every product including inactive ones. Admin only.
func GetAllProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 50, 200)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	products, err := findProducts(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "products": products})
}

// UploadProductImage accepts a multipart image, saves it under a uuid name
// with a thumbnail and appends it to the product's image list.
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file missing")
		return
	}
	defer file.Close()

	if !utils.SupportedImageTypes[header.Header.Get("Content-Type")] {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image type")
		return
	}

	filename, err := utils.SaveImageWithThumb(file, header, productImageDir, 300)
	if err != nil {
		log.Println("UploadProductImage save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to save image")
		return
	}

	res, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": ps.ByName("productid")},
		bson.M{"$push": bson.M{"images": filename}, "$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to attach image")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"image":   "/static/productpic/" + filename,
	})
}
