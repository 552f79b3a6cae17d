package service

import (
	"context"
	"fmt"
	"io"
	"slices"

	"blogstarter/internal/models"
	"blogstarter/internal/pagination"
	"blogstarter/internal/pubsub"
	"blogstarter/internal/repository"
	"blogstarter/internal/storage"

	"go.uber.org/zap"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// PostsQuery describes one publishedPosts page. Empty OrderField means
// createdAt ascending.
type PostsQuery struct {
	Args           pagination.Args
	Query          string
	OrderField     string
	OrderDirection string
}

type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

type PostService interface {
	CreatePost(ctx context.Context, authorID string, input models.CreatePostInput) (*models.Post, error)
	PublishedPosts(ctx context.Context, q PostsQuery) (*pagination.Connection[models.Post], error)
	UserPosts(ctx context.Context, userID string) ([]models.Post, error)
	Post(ctx context.Context, postID string) (*models.Post, error)
	PostAuthor(ctx context.Context, postID string) (*models.User, error)
	AddImage(ctx context.Context, userID, postID string, upload ImageUpload) (*models.Image, error)
	DeleteImage(ctx context.Context, userID, postID, imageID string) error
	// Subscribe streams posts created after the call. The cancel func must
	// be called once the subscriber is gone.
	Subscribe() (<-chan models.Post, func())
}

type postService struct {
	postRepo      repository.PostRepository
	imageRepo     repository.ImageRepository
	userRepo      repository.UserRepository
	storage       storage.Storage
	broker        *pubsub.Broker[models.Post]
	maxUploadSize int64
	log           *zap.Logger
}

func NewPostService(
	postRepo repository.PostRepository,
	imageRepo repository.ImageRepository,
	userRepo repository.UserRepository,
	storage storage.Storage,
	broker *pubsub.Broker[models.Post],
	maxUploadSize int64,
	log *zap.Logger,
) PostService {
	return &postService{
		postRepo:      postRepo,
		imageRepo:     imageRepo,
		userRepo:      userRepo,
		storage:       storage,
		broker:        broker,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

func (p *postService) CreatePost(ctx context.Context, authorID string, input models.CreatePostInput) (*models.Post, error) {
	content := input.Content
	post := &models.Post{
		Title:     input.Title,
		Content:   &content,
		Published: true,
		AuthorID:  authorID,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	delivered := p.broker.Publish(*post)
	p.log.Debug("post created", zap.String("post_id", post.ID), zap.Int("subscribers", delivered))

	return post, nil
}

func postOrder(field, direction string) (pagination.Order, error) {
	order := pagination.Order{Field: "createdAt", Direction: pagination.Asc}

	if field != "" {
		if !repository.IsPostOrderField(field) {
			return pagination.Order{}, fmt.Errorf("%w: cannot order posts by %q", models.ErrBadRequest, field)
		}
		order.Field = field
	}
	if direction != "" {
		d, err := pagination.ParseDirection(direction)
		if err != nil {
			return pagination.Order{}, err
		}
		order.Direction = d
	}

	return order, nil
}

func (p *postService) PublishedPosts(ctx context.Context, q PostsQuery) (*pagination.Connection[models.Post], error) {
	order, err := postOrder(q.OrderField, q.OrderDirection)
	if err != nil {
		return nil, err
	}

	filter := repository.PostFilter{Query: q.Query}

	return pagination.FindManyCursorConnection(
		ctx,
		func(ctx context.Context, w pagination.Window) ([]models.Post, error) {
			return p.postRepo.FindPublished(ctx, filter, w)
		},
		func(ctx context.Context) (int, error) {
			return p.postRepo.CountPublished(ctx, filter)
		},
		q.Args,
		order,
		repository.PostKey,
	)
}

func (p *postService) UserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	return p.postRepo.ListPublishedByAuthor(ctx, userID)
}

func (p *postService) Post(ctx context.Context, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	images, err := p.imageRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	return post, nil
}

func (p *postService) PostAuthor(ctx context.Context, postID string) (*models.User, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return p.userRepo.GetByID(ctx, post.AuthorID)
}

func (p *postService) ownPost(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, fmt.Errorf("%w: only the author can change images of a post", models.ErrForbidden)
	}
	return post, nil
}

func (p *postService) AddImage(ctx context.Context, userID, postID string, upload ImageUpload) (*models.Image, error) {
	if !slices.Contains(allowedImageTypes, upload.ContentType) {
		return nil, fmt.Errorf("%w: unsupported image type %q", models.ErrBadRequest, upload.ContentType)
	}
	if upload.Size <= 0 || upload.Size > p.maxUploadSize {
		return nil, fmt.Errorf("%w: image size must be between 1 and %d bytes", models.ErrBadRequest, p.maxUploadSize)
	}

	if _, err := p.ownPost(ctx, userID, postID); err != nil {
		return nil, err
	}

	objectName, url, err := p.storage.UploadImage(ctx, postID, upload.FileName, upload.ContentType, upload.File, upload.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: store image: %w", models.ErrInternal, err)
	}

	image := &models.Image{
		PostID:     postID,
		ObjectName: objectName,
		ImageURL:   url,
	}

	if err := p.imageRepo.Create(ctx, image); err != nil {
		if delErr := p.storage.DeleteImage(ctx, objectName); delErr != nil {
			p.log.Warn("orphaned image object", zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, err
	}

	return image, nil
}

func (p *postService) DeleteImage(ctx context.Context, userID, postID, imageID string) error {
	if _, err := p.ownPost(ctx, userID, postID); err != nil {
		return err
	}

	image, err := p.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image.PostID != postID {
		return fmt.Errorf("%w: image %s does not belong to post %s", models.ErrNotFound, imageID, postID)
	}

	if err := p.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	if err := p.storage.DeleteImage(ctx, image.ObjectName); err != nil {
		p.log.Warn("failed to delete image object", zap.String("object", image.ObjectName), zap.Error(err))
	}

	return nil
}

func (p *postService) Subscribe() (<-chan models.Post, func()) {
	return p.broker.Subscribe()
}
