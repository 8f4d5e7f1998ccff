package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/httpx"
	"github.com/sepnoty-tech/sepnoty-api/models"
)

type ProductInput struct {
	Name         string              `json:"name" binding:"required,min=3"`
	Description  string              `json:"description" binding:"required,min=10"`
	Category     string              `json:"category"`
	Brand        string              `json:"brand"`
	Price        float64             `json:"price" binding:"gte=0"`
	CountInStock int                 `json:"countInStock" binding:"gte=0"`
	Thumbnail    string              `json:"thumbnail"`
	IsFeatured   bool                `json:"isFeatured"`
	Images       []ProductImageInput `json:"images"`
}

type ProductImageInput struct {
	URL      string `json:"url" binding:"required"`
	PublicID string `json:"publicId"`
}

// POST /api/admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpx.Fail(c, httpx.Validation("Invalid product payload: %s", err.Error()))
			return
		}

		product := models.Product{
			Name:         input.Name,
			Description:  input.Description,
			Category:     input.Category,
			Brand:        input.Brand,
			Price:        input.Price,
			CountInStock: input.CountInStock,
			Thumbnail:    input.Thumbnail,
			IsFeatured:   input.IsFeatured,
			IsActive:     true,
		}
		for _, img := range input.Images {
			product.Images = append(product.Images, models.ProductImage{URL: img.URL, PublicID: img.PublicID})
		}

		if err := db.Create(&product).Error; err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
	}
}

// PUT /api/admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		err := db.Preload("Images").First(&product, c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(c, httpx.NotFound("Product"))
			return
		}
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpx.Fail(c, httpx.Validation("Invalid product payload: %s", err.Error()))
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&product).Updates(map[string]any{
				"name":           input.Name,
				"description":    input.Description,
				"category":       input.Category,
				"brand":          input.Brand,
				"price":          input.Price,
				"count_in_stock": input.CountInStock,
				"thumbnail":      input.Thumbnail,
				"is_featured":    input.IsFeatured,
			}).Error; err != nil {
				return err
			}
			if input.Images == nil {
				return nil
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			for _, img := range input.Images {
				if err := tx.Create(&models.ProductImage{
					ProductID: product.ID, URL: img.URL, PublicID: img.PublicID,
				}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		if err := db.Preload("Images").First(&product, product.ID).Error; err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}

// DELETE /api/admin/products/:id — soft delete keeps order history intact.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Product{}, c.Param("id"))
		if res.Error != nil {
			httpx.Fail(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			httpx.Fail(c, httpx.NotFound("Product"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
	}
}

// GET /api/admin/products/export
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Images").Find(&products).Error; err != nil {
			httpx.Fail(c, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		headers := []string{
			"ID", "Name", "Category", "Brand", "Price", "Stock",
			"Featured", "Active", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(p.Brand)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.CountInStock)
			row.AddCell().SetValue(p.IsFeatured)
			row.AddCell().SetValue(p.IsActive)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			httpx.Fail(c, err)
			return
		}
	}
}
