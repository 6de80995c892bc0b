package domain

import (
	"time"

	userdomain "github.com/inkwellhq/inkwell/internal/user/domain"
)

type PostID string

type Post struct {
	ID         PostID            `json:"id"`
	AuthorID   userdomain.UserID `json:"authorId"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Excerpt    string            `json:"excerpt,omitempty"`
	CoverImage string            `json:"coverImage,omitempty"`
	Category   string            `json:"category,omitempty"`
	Tags       []string          `json:"tags"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// PostWithAuthor joins a post with its author's public profile.
type PostWithAuthor struct {
	Post
	Author userdomain.Profile `json:"author"`
}

// Draft carries the author-supplied fields of a new post.
type Draft struct {
	Title      string
	Content    string
	Excerpt    string
	CoverImage string
	Category   string
	Tags       []string
}

// Patch is a partial update: nil fields leave the stored value unchanged.
type Patch struct {
	Title      *string
	Content    *string
	Excerpt    *string
	CoverImage *string
	Category   *string
	Tags       *[]string
}

// Apply merges the supplied fields onto post. Timestamps are the
// repository's responsibility.
func (p Patch) Apply(post Post) Post {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Excerpt != nil {
		post.Excerpt = *p.Excerpt
	}
	if p.CoverImage != nil {
		post.CoverImage = *p.CoverImage
	}
	if p.Category != nil {
		post.Category = *p.Category
	}
	if p.Tags != nil {
		post.Tags = append([]string(nil), (*p.Tags)...)
	}
	return post
}
