package blog

type PostInput struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Slug             string   `json:"slug" validate:"omitempty,max=200"`
	Content          string   `json:"content" validate:"required"`
	Excerpt          string   `json:"excerpt" validate:"omitempty,max=500"`
	FeaturedImageURL string   `json:"featured_image_url" validate:"omitempty,max=2048"`
	Status           string   `json:"status" validate:"omitempty,oneof=draft published archived"`
	MetaTitle        string   `json:"meta_title" validate:"omitempty,max=60"`
	MetaDescription  string   `json:"meta_description" validate:"omitempty,max=160"`
	Tags             []string `json:"tags" validate:"omitempty,max=20,dive,max=40"`
	Category         string   `json:"category"`
	IsFeatured       bool     `json:"is_featured"`
}

type PublicFilter struct {
	Category string
	Query    string
}

// PublishedPost is a post as shown to readers.
type PublishedPost struct {
	Post    *Post  `json:"post"`
	HTML    string `json:"html"`
	Related []Post `json:"related"`
}
