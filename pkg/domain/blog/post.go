package blog

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/NeuralTrust/BotTracker/pkg/domain"
	"github.com/google/uuid"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrSlugTaken       = errors.New("slug already in use")
)

type Post struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	AuthorID  uuid.UUID       `json:"author_id" gorm:"type:uuid"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug" gorm:"uniqueIndex"`
	Excerpt   string          `json:"excerpt"`
	Content   string          `json:"content"`
	Tags      domain.TagsJSON `json:"tags" gorm:"type:jsonb"`
	Published bool            `json:"published"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func New(authorID uuid.UUID, title, content, excerpt string, tags []string, published bool) (*Post, error) {
	p := &Post{AuthorID: authorID}
	if err := p.Apply(title, content, excerpt, tags, published); err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.CreatedAt = p.UpdatedAt
	return p, nil
}

// Apply overwrites the editable fields and regenerates the slug from the title.
func (p *Post) Apply(title, content, excerpt string, tags []string, published bool) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(content) == "" {
		return ErrContentRequired
	}
	p.Title = title
	p.Slug = Slugify(title)
	p.Content = content
	p.Excerpt = strings.TrimSpace(excerpt)
	p.Tags = domain.TagsJSON(tags)
	p.Published = published
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (Post) TableName() string {
	return "public.blog_posts"
}
