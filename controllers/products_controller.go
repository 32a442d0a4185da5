package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kelechi/skylinkbackend/apperr"
	"github.com/kelechi/skylinkbackend/database"
	"github.com/kelechi/skylinkbackend/dto"
	"github.com/kelechi/skylinkbackend/models"
	"github.com/kelechi/skylinkbackend/storage"
	"github.com/kelechi/skylinkbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// GetProducts is public: the marketing catalog page lists newest first.
func GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")

		maxLimit, defaultLimit := utils.GetDefaultQueryLimits()

		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), defaultLimit)
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > maxLimit {
			limit = defaultLimit
		}
		skip := int64((page - 1) * limit)

		opts := options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.Product, 0)
		for cursor.Next(ctx) {
			var p models.Product
			if err := cursor.Decode(&p); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			items = append(items, p)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := col.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

func GetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var p models.Product
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		c.JSON(http.StatusOK, p)
	}
}

// AddProduct expects multipart/form-data:
//   - data: JSON string (CreateProductDTO)
//   - image: product image file (required on create)
func AddProduct(imageValidator *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")

		dataStr := c.PostForm("data")
		if dataStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data field"})
			return
		}

		var body dto.CreateProductDTO
		if err := json.Unmarshal([]byte(dataStr), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json", "details": err.Error()})
			return
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required", "field": "name"})
			return
		}
		if err := body.Validate(); err != nil {
			renderValidation(c, err)
			return
		}

		fh, err := c.FormFile("image")
		if err != nil || fh == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product image is required", "field": "image"})
			return
		}
		contentType, err := imageValidator.ValidateFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "image"})
			return
		}

		store, err := storage.FromEnv(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create storage client"})
			return
		}

		file, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
			return
		}
		defer file.Close()

		imageURL, err := store.Upload(ctx, productObjectName(body.Name, fh.Filename), contentType, file)
		if err != nil {
			renderStorageError(c)
			return
		}

		now := time.Now().UTC()
		product := models.Product{
			ID:            bson.NewObjectID(),
			Name:          body.Name,
			Price:         *body.Price,
			Description:   body.Description,
			Specification: body.Specification,
			ImageURL:      imageURL,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if _, err := col.InsertOne(ctx, product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProduct applies the partial pointer DTO. When a replacement image is
// attached it is uploaded first and only its URL persisted; the old object is
// removed best-effort after the DB write succeeds.
func UpdateProduct(imageValidator *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		dataStr := c.PostForm("data")
		if dataStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data field"})
			return
		}

		var body dto.UpdateProductDTO
		if err := json.Unmarshal([]byte(dataStr), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json", "details": err.Error()})
			return
		}
		if err := body.Validate(); err != nil {
			renderValidation(c, err)
			return
		}

		var product models.Product
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		set := bson.M{}
		if body.Name != nil {
			set["name"] = strings.TrimSpace(*body.Name)
		}
		if body.Price != nil {
			set["price"] = *body.Price
		}
		if body.Description != nil {
			set["description"] = *body.Description
		}
		if body.Specification != nil {
			set["specification"] = *body.Specification
		}

		// Optional replacement image
		var newObjectName string
		var store storage.ImageStore
		if fh, ferr := c.FormFile("image"); ferr == nil && fh != nil {
			contentType, err := imageValidator.ValidateFile(fh)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "image"})
				return
			}

			store, err = storage.FromEnv(ctx)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create storage client"})
				return
			}

			file, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
				return
			}

			name := product.Name
			if body.Name != nil {
				name = *body.Name
			}
			newObjectName = productObjectName(name, fh.Filename)
			imageURL, err := store.Upload(ctx, newObjectName, contentType, file)
			_ = file.Close()
			if err != nil {
				renderStorageError(c)
				return
			}
			set["imageUrl"] = imageURL
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		res, err := col.UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			// don't leave the freshly uploaded object orphaned
			if store != nil && newObjectName != "" {
				_ = store.Delete(ctx, newObjectName)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed", "details": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		// DB write ok; drop the replaced image best-effort
		if store != nil && newObjectName != "" && product.ImageURL != "" {
			if oldObject, err := store.ObjectName(product.ImageURL); err == nil {
				_ = store.Delete(ctx, oldObject)
			}
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DeleteProduct is a hard delete; the stored image object is removed
// best-effort afterwards.
func DeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var product models.Product
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		if product.ImageURL != "" {
			if store, serr := storage.FromEnv(ctx); serr == nil {
				if oldObject, oerr := store.ObjectName(product.ImageURL); oerr == nil {
					_ = store.Delete(ctx, oldObject)
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func productObjectName(productName, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("products/%s/%d-%s%s",
		utils.GenerateSlug(productName), time.Now().UTC().Unix(), uuid.New().String(), ext)
}

// Storage failures are server-side; the response never carries backend or
// bucket detail.
func renderStorageError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "image storage unavailable"})
}

func renderValidation(c *gin.Context, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason, "field": ve.Field})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
