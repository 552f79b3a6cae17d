package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"blogstarter/internal/auth"
	"blogstarter/internal/config"
	"blogstarter/internal/metrics"
	"blogstarter/internal/models"
	"blogstarter/internal/pagination"
	"blogstarter/internal/pubsub"
	"blogstarter/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSecurity = config.Security{
	AccessSecret:  "access-secret",
	RefreshSecret: "refresh-secret",
	ExpiresIn:     2 * time.Minute,
	RefreshIn:     time.Hour,
}

func newTestHasher(t *testing.T) *auth.PasswordHasher {
	t.Helper()
	h, err := auth.NewPasswordHasher("4")
	require.NoError(t, err)
	return h
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: email %s is already used", models.ErrConflict, user.Email)
		}
	}
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: no user with id %s", models.ErrNotFound, userID)
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: no user for email %s", models.ErrNotFound, email)
}

func (r *fakeUserRepo) Update(ctx context.Context, userID string, profile repository.ProfileUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: no user with id %s", models.ErrNotFound, userID)
	}
	if profile.Firstname != nil {
		u.Firstname = profile.Firstname
	}
	if profile.Lastname != nil {
		u.Lastname = profile.Lastname
	}
	r.users[userID] = u
	return &u, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: no user with id %s", models.ErrNotFound, userID)
	}
	u.Password = passwordHash
	r.users[userID] = u
	return &u, nil
}

// fakePostRepo evaluates pagination windows the way the SQL keyset query does.
type fakePostRepo struct {
	mu    sync.Mutex
	posts []models.Post
	err   error
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
		post.UpdatedAt = post.CreatedAt
	}
	r.posts = append(r.posts, *post)
	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == postID {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: no post with id %s", models.ErrNotFound, postID)
}

func (r *fakePostRepo) ListPublishedByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range r.published(repository.PostFilter{}) {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	sortPosts(out, pagination.Order{Field: "createdAt", Direction: pagination.Asc})
	return out, nil
}

func (r *fakePostRepo) published(filter repository.PostFilter) []models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, p := range r.posts {
		if p.Published && strings.Contains(p.Title, filter.Query) {
			out = append(out, p)
		}
	}
	return out
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		return av.Compare(b.(time.Time))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	default:
		return strings.Compare(a.(string), b.(string))
	}
}

func comparePost(p models.Post, field string, value any, id string) int {
	v, pid := repository.PostKey(p, field)
	if c := compareValues(v, value); c != 0 {
		return c
	}
	return strings.Compare(pid, id)
}

func sortPosts(posts []models.Post, order pagination.Order) {
	sign := 1
	if order.Direction == pagination.Desc {
		sign = -1
	}
	sort.Slice(posts, func(i, j int) bool {
		v, id := repository.PostKey(posts[j], order.Field)
		return sign*comparePost(posts[i], order.Field, v, id) < 0
	})
}

func fakeCursorValue(c *pagination.Cursor) (any, error) {
	var dst any
	switch c.Field {
	case "createdAt", "updatedAt":
		var t time.Time
		if err := c.Scan(&t); err != nil {
			return nil, err
		}
		dst = t
	case "published":
		var b bool
		if err := c.Scan(&b); err != nil {
			return nil, err
		}
		dst = b
	default:
		var s string
		if err := c.Scan(&s); err != nil {
			return nil, err
		}
		dst = s
	}
	return dst, nil
}

func (r *fakePostRepo) FindPublished(ctx context.Context, filter repository.PostFilter, w pagination.Window) ([]models.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	rows := r.published(filter)
	sortPosts(rows, w.Order)

	sign := 1
	if w.Order.Direction == pagination.Desc {
		sign = -1
	}

	var out []models.Post
	for _, p := range rows {
		if w.After != nil {
			v, err := fakeCursorValue(w.After)
			if err != nil {
				return nil, err
			}
			if sign*comparePost(p, w.Order.Field, v, w.After.ID) <= 0 {
				continue
			}
		}
		if w.Before != nil {
			v, err := fakeCursorValue(w.Before)
			if err != nil {
				return nil, err
			}
			if sign*comparePost(p, w.Order.Field, v, w.Before.ID) >= 0 {
				continue
			}
		}
		out = append(out, p)
	}

	if len(out) > w.Limit {
		if w.Backward {
			out = out[len(out)-w.Limit:]
		} else {
			out = out[:w.Limit]
		}
	}
	return out, nil
}

func (r *fakePostRepo) CountPublished(ctx context.Context, filter repository.PostFilter) (int, error) {
	return len(r.published(filter)), nil
}

type fakeImageRepo struct {
	images map[string]models.Image
	err    error
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: map[string]models.Image{}}
}

func (r *fakeImageRepo) Create(ctx context.Context, image *models.Image) error {
	if r.err != nil {
		return r.err
	}
	image.ImageID = uuid.New().String()
	image.CreatedAt = time.Now()
	r.images[image.ImageID] = *image
	return nil
}

func (r *fakeImageRepo) GetByID(ctx context.Context, imageID string) (*models.Image, error) {
	img, ok := r.images[imageID]
	if !ok {
		return nil, fmt.Errorf("%w: no image with id %s", models.ErrNotFound, imageID)
	}
	return &img, nil
}

func (r *fakeImageRepo) ListByPost(ctx context.Context, postID string) ([]models.Image, error) {
	out := []models.Image{}
	for _, img := range r.images {
		if img.PostID == postID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *fakeImageRepo) Delete(ctx context.Context, imageID string) error {
	if _, ok := r.images[imageID]; !ok {
		return fmt.Errorf("%w: no image with id %s", models.ErrNotFound, imageID)
	}
	delete(r.images, imageID)
	return nil
}

type fakeStorage struct {
	objects   map[string][]byte
	removed   []string
	uploadErr error
	pingErr   error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) UploadImage(ctx context.Context, postID, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	if s.uploadErr != nil {
		return "", "", s.uploadErr
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", err
	}
	name := "posts/" + postID + "/" + fileName
	s.objects[name] = data
	return name, "http://storage/images/" + name, nil
}

func (s *fakeStorage) DeleteImage(ctx context.Context, objectName string) error {
	delete(s.objects, objectName)
	s.removed = append(s.removed, objectName)
	return nil
}

func (s *fakeStorage) Ping(ctx context.Context) error {
	return s.pingErr
}

type fakePinger struct{ err error }

func (p fakePinger) HealthCheck(ctx context.Context) error { return p.err }

type fakeTables struct {
	count int
	err   error
}

func (f fakeTables) CountTables(ctx context.Context) (int, error) { return f.count, f.err }

type fixture struct {
	users   *fakeUserRepo
	posts   *fakePostRepo
	images  *fakeImageRepo
	storage *fakeStorage
	broker  *pubsub.Broker[models.Post]
	tokens  *auth.TokenIssuer
	auth    AuthService
	user    UserService
	post    PostService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:   newFakeUserRepo(),
		posts:   &fakePostRepo{},
		images:  newFakeImageRepo(),
		storage: newFakeStorage(),
		broker:  pubsub.NewBroker[models.Post](8),
		tokens:  auth.NewTokenIssuer(testSecurity),
	}
	hasher := newTestHasher(t)
	log := zap.NewNop()

	f.auth = NewAuthService(f.users, hasher, f.tokens, metrics.New(), log)
	f.user = NewUserService(f.users, hasher, log)
	f.post = NewPostService(f.posts, f.images, f.users, f.storage, f.broker, 1024, log)
	t.Cleanup(f.broker.Close)
	return f
}

func (f *fixture) signup(t *testing.T, email string) string {
	t.Helper()
	pair, err := f.auth.Signup(context.Background(), models.SignupInput{Email: email, Password: "password123"})
	require.NoError(t, err)
	userID, err := f.tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	return userID
}

var errBoom = errors.New("boom")
