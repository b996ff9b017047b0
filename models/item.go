package models

import (
	"time"
)

// Item represents a catalog entry
type Item struct {
	ID        string    `json:"itemId"`
	Name      string    `json:"itemName"`
	PhotoURLs []string  `json:"itemPhotoUrls"`
	Price     Price     `json:"itemPrice"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ItemInput holds the text fields of a multipart add-item request
type ItemInput struct {
	ItemName  string `form:"itemName"`
	ItemPrice string `form:"itemPrice"`
}

// ItemUpdateInput holds a partial update. Empty or zero fields keep the stored value.
type ItemUpdateInput struct {
	ItemName      string    `json:"itemName"`
	ItemPrice     PriceText `json:"itemPrice"`
	ItemPhotoURLs []string  `json:"itemPhotoUrls"`
}
