package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"blogstarter/internal/models"
	"blogstarter/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func seedPosts(f *fixture, authorID string, n int) []models.Post {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var out []models.Post
	for i := 0; i < n; i++ {
		content := fmt.Sprintf("body %d", i)
		p := models.Post{
			Base:      models.Base{ID: fmt.Sprintf("p%02d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)},
			Title:     fmt.Sprintf("title %d", i%2),
			Content:   &content,
			Published: true,
			AuthorID:  authorID,
		}
		_ = f.posts.Create(context.Background(), &p)
		out = append(out, p)
	}
	return out
}

func nodeIDs(c *pagination.Connection[models.Post]) []string {
	ids := make([]string, 0, len(c.Edges))
	for _, e := range c.Edges {
		ids = append(ids, e.Node.ID)
	}
	return ids
}

func TestPostService_CreatePostPublishesEvent(t *testing.T) {
	f := newFixture(t)
	authorID := f.signup(t, "author@example.com")

	events, cancel := f.post.Subscribe()
	defer cancel()

	post, err := f.post.CreatePost(context.Background(), authorID, models.CreatePostInput{Title: "Hello", Content: "World"})
	require.NoError(t, err)
	assert.True(t, post.Published)
	assert.Equal(t, authorID, post.AuthorID)
	assert.Equal(t, "World", *post.Content)

	select {
	case got := <-events:
		assert.Equal(t, post.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("no postCreated event")
	}
}

func TestPostService_CreatePostFailureDoesNotPublish(t *testing.T) {
	f := newFixture(t)
	f.posts.err = errBoom

	events, cancel := f.post.Subscribe()
	defer cancel()

	_, err := f.post.CreatePost(context.Background(), "u1", models.CreatePostInput{Title: "Hello", Content: "World"})
	require.ErrorIs(t, err, errBoom)
	assert.Len(t, events, 0)
}

func TestPostService_PublishedPostsPages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedPosts(f, "u1", 5)

	first, err := f.post.PublishedPosts(ctx, PostsQuery{Args: pagination.Args{First: intPtr(2)}})
	require.NoError(t, err)
	assert.Equal(t, []string{"p00", "p01"}, nodeIDs(first))
	assert.False(t, first.PageInfo.HasPreviousPage)
	assert.True(t, first.PageInfo.HasNextPage)
	assert.Equal(t, 5, first.TotalCount)

	second, err := f.post.PublishedPosts(ctx, PostsQuery{Args: pagination.Args{First: intPtr(2), After: first.PageInfo.EndCursor}})
	require.NoError(t, err)
	assert.Equal(t, []string{"p02", "p03"}, nodeIDs(second))
	assert.True(t, second.PageInfo.HasPreviousPage)
	assert.Equal(t, 5, second.TotalCount)
}

func TestPostService_PublishedPostsOrderAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedPosts(f, "u1", 6)
	f.posts.posts = append(f.posts.posts, models.Post{Base: models.Base{ID: "draft"}, Title: "title 1"})

	conn, err := f.post.PublishedPosts(ctx, PostsQuery{
		Args:           pagination.Args{Last: intPtr(2)},
		Query:          "title 1",
		OrderField:     "createdAt",
		OrderDirection: "desc",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p03", "p01"}, nodeIDs(conn))
	assert.True(t, conn.PageInfo.HasPreviousPage)
	assert.Equal(t, 3, conn.TotalCount)

	// filter is case-sensitive
	conn, err = f.post.PublishedPosts(ctx, PostsQuery{Query: "Title"})
	require.NoError(t, err)
	assert.Zero(t, conn.TotalCount)
	assert.Empty(t, conn.Edges)
}

func TestPostService_PublishedPostsCursorTiedOnTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedPosts(f, "u1", 5)

	var seen []string
	q := PostsQuery{Args: pagination.Args{First: intPtr(2)}, OrderField: "title"}
	for {
		page, err := f.post.PublishedPosts(ctx, q)
		require.NoError(t, err)
		seen = append(seen, nodeIDs(page)...)
		if !page.PageInfo.HasNextPage {
			break
		}
		q.Args.After = page.PageInfo.EndCursor
	}
	assert.Equal(t, []string{"p00", "p02", "p04", "p01", "p03"}, seen)
}

func TestPostService_PublishedPostsRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedPosts(f, "u1", 3)

	first, err := f.post.PublishedPosts(ctx, PostsQuery{Args: pagination.Args{First: intPtr(1)}})
	require.NoError(t, err)

	tests := []struct {
		name string
		q    PostsQuery
	}{
		{name: "unknown field", q: PostsQuery{OrderField: "password"}},
		{name: "unknown direction", q: PostsQuery{OrderDirection: "up"}},
		{name: "first and last", q: PostsQuery{Args: pagination.Args{First: intPtr(1), Last: intPtr(1)}}},
		{name: "cursor from another order", q: PostsQuery{
			Args:       pagination.Args{After: first.PageInfo.EndCursor},
			OrderField: "title",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.post.PublishedPosts(ctx, tt.q)
			assert.True(t, errors.Is(err, models.ErrBadRequest))
		})
	}
}

func TestPostService_UserPostsAndAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	authorID := f.signup(t, "writer@example.com")
	seedPosts(f, authorID, 3)
	seedPosts(f, "someone-else", 1)

	posts, err := f.post.UserPosts(ctx, authorID)
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	author, err := f.post.PostAuthor(ctx, posts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "writer@example.com", author.Email)

	_, err = f.post.PostAuthor(ctx, "missing")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestPostService_Images(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	authorID := f.signup(t, "painter@example.com")
	post, err := f.post.CreatePost(ctx, authorID, models.CreatePostInput{Title: "Gallery", Content: "pics"})
	require.NoError(t, err)

	upload := func() ImageUpload {
		return ImageUpload{FileName: "a.png", ContentType: "image/png", Size: 4, File: strings.NewReader("data")}
	}

	t.Run("author uploads and deletes", func(t *testing.T) {
		image, err := f.post.AddImage(ctx, authorID, post.ID, upload())
		require.NoError(t, err)
		assert.Equal(t, "http://storage/images/posts/"+post.ID+"/a.png", image.ImageURL)

		detail, err := f.post.Post(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, detail.Images, 1)

		require.NoError(t, f.post.DeleteImage(ctx, authorID, post.ID, image.ImageID))
		assert.Contains(t, f.storage.removed, image.ObjectName)

		detail, err = f.post.Post(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, detail.Images)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		_, err := f.post.AddImage(ctx, "intruder", post.ID, upload())
		assert.True(t, errors.Is(err, models.ErrForbidden))
	})

	t.Run("unsupported type", func(t *testing.T) {
		u := upload()
		u.ContentType = "application/pdf"
		_, err := f.post.AddImage(ctx, authorID, post.ID, u)
		assert.True(t, errors.Is(err, models.ErrBadRequest))
	})

	t.Run("too large", func(t *testing.T) {
		u := upload()
		u.Size = 4096
		_, err := f.post.AddImage(ctx, authorID, post.ID, u)
		assert.True(t, errors.Is(err, models.ErrBadRequest))
	})

	t.Run("object is removed when metadata cannot be saved", func(t *testing.T) {
		f.images.err = errBoom
		defer func() { f.images.err = nil }()

		_, err := f.post.AddImage(ctx, authorID, post.ID, upload())
		require.ErrorIs(t, err, errBoom)
		assert.Empty(t, f.storage.objects)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		f.storage.uploadErr = errBoom
		defer func() { f.storage.uploadErr = nil }()

		_, err := f.post.AddImage(ctx, authorID, post.ID, upload())
		require.ErrorIs(t, err, errBoom)
		assert.True(t, errors.Is(err, models.ErrInternal))
	})

	t.Run("image of another post", func(t *testing.T) {
		other, err := f.post.CreatePost(ctx, authorID, models.CreatePostInput{Title: "Other", Content: "x"})
		require.NoError(t, err)
		image, err := f.post.AddImage(ctx, authorID, other.ID, upload())
		require.NoError(t, err)

		err = f.post.DeleteImage(ctx, authorID, post.ID, image.ImageID)
		assert.True(t, errors.Is(err, models.ErrNotFound))
	})
}

func TestPostService_PostNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.post.Post(context.Background(), "nope")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
