package blog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Categories offered in the editor and the public filter.
var Categories = []string{
	"Technology",
	"Business",
	"Digital Marketing",
	"Web Development",
	"Software Solutions",
	"Industry News",
	"Tutorials",
	"Case Studies",
}

const TablePosts = "blog_posts"

type Post struct {
	ID                 string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	Title              string     `gorm:"column:title;not null" json:"title"`
	Slug               string     `gorm:"column:slug;size:255;uniqueIndex;not null" json:"slug"`
	Content            string     `gorm:"column:content;type:text;not null" json:"content"`
	Excerpt            *string    `gorm:"column:excerpt;type:text" json:"excerpt"`
	FeaturedImageURL   *string    `gorm:"column:featured_image_url" json:"featured_image_url"`
	Status             Status     `gorm:"column:status;size:16;not null;default:draft;index" json:"status"`
	AuthorID           string     `gorm:"column:author_id;size:36" json:"author_id"`
	AuthorName         string     `gorm:"column:author_name" json:"author_name"`
	MetaTitle          *string    `gorm:"column:meta_title" json:"meta_title"`
	MetaDescription    *string    `gorm:"column:meta_description;type:text" json:"meta_description"`
	Tags               []string   `gorm:"column:tags;type:text;serializer:json" json:"tags"`
	Category           *string    `gorm:"column:category;index" json:"category"`
	ReadingTimeMinutes int        `gorm:"column:reading_time_minutes" json:"reading_time_minutes"`
	IsFeatured         bool       `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	PublishedAt        *time.Time `gorm:"column:published_at;index" json:"published_at"`
	CreatedAt          time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Post) TableName() string { return TablePosts }

func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	return nil
}
