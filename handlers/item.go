package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/JuzzThyne/ERI-backend/catalog"
	"github.com/JuzzThyne/ERI-backend/models"

	"github.com/gin-gonic/gin"
)

// Multipart field names carrying images. Both are accepted.
var imageFields = []string{"images", "image"}

type itemSummary struct {
	ID        string       `json:"itemId"`
	PhotoURLs []string     `json:"itemPhotoUrls"`
	Name      string       `json:"itemName"`
	Price     models.Price `json:"itemPrice"`
}

type itemDetail struct {
	PhotoURLs []string     `json:"itemPhotoUrls"`
	Name      string       `json:"itemName"`
	Price     models.Price `json:"itemPrice"`
}

// ListItems searches items by name, one page at a time
func (h *Handler) ListItems(c *gin.Context) {
	q := catalog.ParseSearchQuery(
		c.Query("searchterm"),
		c.Query("page"),
		c.Query("limit"),
		c.Query("sortOrder"),
	)

	res, err := h.items.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]itemSummary, 0, len(res.Items))
	for _, s := range res.Items {
		data = append(data, itemSummary{ID: s.ID, PhotoURLs: s.PhotoURLs, Name: s.Name, Price: s.Price})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       res.Count,
		"currentPage": res.Page,
		"totalPages":  res.TotalPages,
		"data":        data,
	})
}

// CreateItem adds an item from a multipart form with one or more images
func (h *Handler) CreateItem(c *gin.Context) {
	var input models.ItemInput

	// Parse multipart body
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "Request must be multipart/form-data")
		return
	}
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, "Invalid form fields")
		return
	}

	var headers []*multipart.FileHeader
	for _, field := range imageFields {
		headers = append(headers, form.File[field]...)
	}

	images, closeAll, err := openImages(headers)
	defer closeAll()
	if err != nil {
		respondError(c, err)
		return
	}

	_, err = h.items.Create(c.Request.Context(), catalog.NewItem{
		Name:   input.ItemName,
		Price:  input.ItemPrice,
		Images: images,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added successfully!",
		"success": true,
	})
}

// openImages opens every uploaded part. The returned func closes whatever
// was opened and is safe to call on error.
func openImages(headers []*multipart.FileHeader) ([]catalog.ImageFile, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	images := make([]catalog.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, errors.Join(catalog.ErrUploadFailed, err)
		}
		opened = append(opened, f)
		images = append(images, catalog.ImageFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return images, closeAll, nil
}

// GetItem returns one item without its id and timestamps
func (h *Handler) GetItem(c *gin.Context) {
	it, err := h.items.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": itemDetail{PhotoURLs: it.PhotoURLs, Name: it.Name, Price: it.Price},
	})
}

// UpdateItem merges a JSON patch over an item
func (h *Handler) UpdateItem(c *gin.Context) {
	var input models.ItemUpdateInput

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	_, err := h.items.Update(c.Request.Context(), c.Param("id"), catalog.ItemPatch{
		Name:      input.ItemName,
		Price:     string(input.ItemPrice),
		PhotoURLs: input.ItemPhotoURLs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated successfully!",
		"success": true,
	})
}

// DeleteItem removes an item. Hosted images are left in place.
func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.items.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item deleted successfully!",
		"success": true,
	})
}
