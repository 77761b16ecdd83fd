package repository

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/d60-Lab/osuda/internal/model"
	"github.com/d60-Lab/osuda/internal/storage"
	"github.com/d60-Lab/osuda/pkg/logger"
)

var (
	ErrContentRequired = errors.New("content is required")
	ErrPostNotFound    = errors.New("post not found")
)

// PostRepository owns the in-memory post collection and writes the whole
// collection back to Storage after every mutation.
type PostRepository interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, content, keywords string, manualDate *string) (model.Post, error)
	Get(ctx context.Context, id int64) (model.Post, error)
	Update(ctx context.Context, id int64, content, keywords string, manualDate *string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) []model.Post
	Flush(ctx context.Context) error
}

type postRepository struct {
	mu    sync.RWMutex
	posts []model.Post
	store storage.Storage
}

func NewPostRepository(store storage.Storage) PostRepository {
	return &postRepository{posts: []model.Post{}, store: store}
}

// Load replaces the collection with whatever Storage holds. Called once at
// startup; a load failure is fatal there, not here.
func (r *postRepository) Load(ctx context.Context) error {
	posts, err := r.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.posts = posts
	r.mu.Unlock()
	return nil
}

func (r *postRepository) Create(ctx context.Context, content, keywords string, manualDate *string) (model.Post, error) {
	if content == "" {
		return model.Post{}, ErrContentRequired
	}
	r.mu.Lock()
	post := model.Post{
		ID:         r.nextID(),
		Content:    content,
		Keywords:   keywords,
		CreatedAt:  model.NowUTC(),
		ManualDate: normalizeManualDate(manualDate),
	}
	r.posts = append(r.posts, post)
	snapshot := r.snapshot()
	r.mu.Unlock()

	r.persist(ctx, snapshot)
	return post, nil
}

func (r *postRepository) Get(_ context.Context, id int64) (model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Post{}, ErrPostNotFound
}

func (r *postRepository) Update(ctx context.Context, id int64, content, keywords string, manualDate *string) error {
	if content == "" {
		return ErrContentRequired
	}
	r.mu.Lock()
	idx := r.indexOf(id)
	if idx < 0 {
		r.mu.Unlock()
		return ErrPostNotFound
	}
	// id and created_at stay; an omitted manual_date clears the stored one.
	r.posts[idx].Content = content
	r.posts[idx].Keywords = keywords
	r.posts[idx].ManualDate = normalizeManualDate(manualDate)
	snapshot := r.snapshot()
	r.mu.Unlock()

	r.persist(ctx, snapshot)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	idx := r.indexOf(id)
	if idx < 0 {
		r.mu.Unlock()
		return ErrPostNotFound
	}
	r.posts = append(r.posts[:idx], r.posts[idx+1:]...)
	snapshot := r.snapshot()
	r.mu.Unlock()

	r.persist(ctx, snapshot)
	return nil
}

// List returns a snapshot in append order; callers filter and sort their own
// copy.
func (r *postRepository) List(_ context.Context) []model.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot()
}

// Flush writes the current collection out once more. Used on shutdown.
func (r *postRepository) Flush(ctx context.Context) error {
	r.mu.RLock()
	snapshot := r.snapshot()
	r.mu.RUnlock()
	return r.store.SaveAll(ctx, snapshot)
}

// persist is best-effort: a storage failure is logged and swallowed, the
// in-memory collection stays authoritative and the caller's operation still
// succeeds. No retry, no rollback.
func (r *postRepository) persist(ctx context.Context, snapshot []model.Post) {
	if err := r.store.SaveAll(ctx, snapshot); err != nil {
		logger.Error("persist posts", zap.Int("count", len(snapshot)), zap.Error(err))
	}
}

// nextID is max(existing)+1, or 1 for an empty collection. Caller holds the
// lock.
func (r *postRepository) nextID() int64 {
	var max int64
	for _, p := range r.posts {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func (r *postRepository) indexOf(id int64) int {
	for i, p := range r.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *postRepository) snapshot() []model.Post {
	out := make([]model.Post, len(r.posts))
	copy(out, r.posts)
	return out
}

// normalizeManualDate maps both nil and "" to cleared, mirroring the wire
// contract where an omitted or blank manual_date means "no override".
func normalizeManualDate(manualDate *string) *string {
	if manualDate == nil || *manualDate == "" {
		return nil
	}
	v := *manualDate
	return &v
}
