package post

import (
	"strings"

	"github.com/saulfrancisco-ruizacevedo/go-tourmarket/models"
)

// Filter narrows a feed. Zero fields match everything.
type Filter struct {
	// Keyword is matched case-insensitively against title, description and location.
	Keyword    string
	OwnerID    string
	ActiveOnly bool
}

// FilterPosts returns the posts matching f, keeping their order.
func FilterPosts(posts []models.Post, f Filter) []models.Post {
	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if f.OwnerID != "" && p.OwnerID != f.OwnerID {
			continue
		}
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(p.Title), keyword) &&
			!strings.Contains(strings.ToLower(p.Description), keyword) &&
			!strings.Contains(strings.ToLower(p.Location), keyword) {
			continue
		}
		out = append(out, p)
	}
	return out
}
