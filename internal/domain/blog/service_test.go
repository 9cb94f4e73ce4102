package blog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultancy/internal/backend"
	"consultancy/internal/backend/gormstore"
	"consultancy/internal/database/dbtest"
)

var author = backend.Identity{ID: "u-1", Email: "editor@decodershq.com"}

func newService(t *testing.T) (*Service, *time.Time) {
	t.Helper()
	clock := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(NewRepository(gormstore.New(dbtest.Open(t, &Post{}))), nil)
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello, World!", "hello-world"},
		{"  Go  & Gin -- in 2030 ", "go-gin-in-2030"},
		{"already-a-slug", "already-a-slug"},
		{"Ünïcode Title", "n-code-title"},
		{"Hello.World", "hello-world"},
		{"Don't Panic", "don-t-panic"},
		{"Go/Gin: a primer", "go-gin-a-primer"},
		{"!!!", ""},
		{"snake_case_title", "snake-case-title"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), tc.in)
	}
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 1, ReadingTime("just a few words"))
	assert.Equal(t, 1, ReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 0, ReadingTime(""))
}

func TestRenderer_SanitizesHTML(t *testing.T) {
	html, err := NewRenderer().Render("# Title\n\nHello <script>alert(1)</script> **bold**")
	require.NoError(t, err)

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newService(t)
	title := "A Very Long Title About Digital Transformation For Growing Businesses In Africa"

	p, err := svc.Create(context.Background(), author, PostInput{
		Title:   title,
		Content: strings.Repeat("word ", 450),
		Excerpt: "Short summary",
		Tags:    []string{" go ", "Go", "", "cloud"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, Slugify(title), p.Slug)
	assert.Equal(t, 3, p.ReadingTimeMinutes)
	assert.Equal(t, []string{"go", "cloud"}, p.Tags)
	assert.Equal(t, "editor@decodershq.com", p.AuthorName)
	assert.Nil(t, p.PublishedAt)
	require.NotNil(t, p.MetaTitle)
	assert.Len(t, []rune(*p.MetaTitle), 60)
	require.NotNil(t, p.MetaDescription)
	assert.Equal(t, "Short summary", *p.MetaDescription)

	stored, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "cloud"}, stored.Tags)
}

func TestCreate_PublishedStampsPublishedAt(t *testing.T) {
	svc, clock := newService(t)

	p, err := svc.Create(context.Background(), author, PostInput{
		Title: "Launch", Content: "body", Status: "published",
	})
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
	assert.True(t, p.PublishedAt.Equal(*clock))
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, author, PostInput{Content: "body"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")

	_, err = svc.Create(ctx, author, PostInput{Title: "x", Content: "y", Status: "live"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")

	_, err = svc.Create(ctx, author, PostInput{Title: "x", Content: "y", Category: "Cooking"})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = svc.Create(ctx, author, PostInput{Title: "???", Content: "y"})
	assert.ErrorIs(t, err, ErrInvalidSlug)
}

func TestCreate_DuplicateSlug(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, author, PostInput{Title: "Same Title", Content: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, author, PostInput{Title: "Other", Slug: "same-title", Content: "b"})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestUpdate_PublishOnceKeepsPublishedAt(t *testing.T) {
	svc, clock := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, author, PostInput{Title: "Draft", Content: "a"})
	require.NoError(t, err)

	*clock = clock.Add(time.Hour)
	first := *clock
	p, err = svc.Update(ctx, p.ID, PostInput{Title: "Draft", Content: "a b c", Status: "published", Tags: []string{"x"}})
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
	assert.True(t, p.PublishedAt.Equal(first))
	assert.Equal(t, []string{"x"}, p.Tags)

	*clock = clock.Add(24 * time.Hour)
	p, err = svc.Update(ctx, p.ID, PostInput{Title: "Renamed", Content: "a", Status: "published"})
	require.NoError(t, err)
	assert.True(t, p.PublishedAt.Equal(first))
	assert.Equal(t, "renamed", p.Slug)
}

func TestUpdate_MissingPost(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Update(context.Background(), "nope", PostInput{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, author, PostInput{Title: "Gone", Content: "a"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), ErrNotFound)
}

func seedPublished(t *testing.T, svc *Service, clock *time.Time) {
	t.Helper()
	ctx := context.Background()
	for _, in := range []PostInput{
		{Title: "Cloud Basics", Content: "a", Excerpt: "Intro to cloud", Category: "Technology", Status: "published"},
		{Title: "Brand Voice", Content: "a", Category: "Business", Status: "published"},
		{Title: "Go Services", Content: "a", Excerpt: "Building cloud apps", Category: "Technology", Status: "published"},
		{Title: "Hidden Draft", Content: "a", Category: "Technology"},
		{Title: "SEO Tips", Content: "a", Category: "Digital Marketing", Status: "published"},
	} {
		*clock = clock.Add(time.Hour)
		_, err := svc.Create(ctx, author, in)
		require.NoError(t, err)
	}
}

func titles(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

func TestListPublished(t *testing.T) {
	svc, clock := newService(t)
	seedPublished(t, svc, clock)
	ctx := context.Background()

	all, err := svc.ListPublished(ctx, PublicFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"SEO Tips", "Go Services", "Brand Voice", "Cloud Basics"}, titles(all))

	tech, err := svc.ListPublished(ctx, PublicFilter{Category: "Technology"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go Services", "Cloud Basics"}, titles(tech))

	found, err := svc.ListPublished(ctx, PublicFilter{Category: "all", Query: "CLOUD"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go Services", "Cloud Basics"}, titles(found))
}

func TestGetPublished(t *testing.T) {
	svc, clock := newService(t)
	seedPublished(t, svc, clock)
	ctx := context.Background()

	got, err := svc.GetPublished(ctx, "go-services")
	require.NoError(t, err)
	assert.Equal(t, "Go Services", got.Post.Title)
	assert.Contains(t, got.HTML, "<p>a</p>")
	assert.Equal(t, []string{"SEO Tips", "Brand Voice", "Cloud Basics"}, titles(got.Related))

	_, err = svc.GetPublished(ctx, "hidden-draft")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetPublished(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
