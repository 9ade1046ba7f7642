package post

import (
	"github.com/shopspring/decimal"

	"github.com/saulfrancisco-ruizacevedo/go-tourmarket"
	"github.com/saulfrancisco-ruizacevedo/go-tourmarket/models"
)

// Decode maps a document to a post. It fails when any required field is
// missing or has the wrong type; imageURL is optional.
func Decode(doc tourmarket.Document) (models.Post, bool) {
	id, ok1 := doc.Text("id")
	title, ok2 := doc.Text("title")
	description, ok3 := doc.Text("description")
	date, ok4 := doc.Time("date")
	location, ok5 := doc.Text("location")
	isActive, ok6 := doc.Bool("isActive")
	price, ok7 := doc.Float("price")
	ownerID, ok8 := doc.Text("ownerID")
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8) {
		return models.Post{}, false
	}

	p := models.Post{
		ID:          id,
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		Date:        date,
		Location:    location,
		IsActive:    isActive,
		Price:       decimal.NewFromFloat(price),
	}
	if url, ok := doc.Text("imageURL"); ok {
		p.ImageURL = &url
	}
	return p, true
}

// DecodeAll decodes every well-formed document and reports how many were dropped.
func DecodeAll(docs []tourmarket.Document) ([]models.Post, int) {
	posts := make([]models.Post, 0, len(docs))
	skipped := 0
	for _, doc := range docs {
		p, ok := Decode(doc)
		if !ok {
			skipped++
			continue
		}
		posts = append(posts, p)
	}
	return posts, skipped
}
