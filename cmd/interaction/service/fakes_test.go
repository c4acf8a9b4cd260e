package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"BlogSphere.com/cmd/interaction/dal/db"
	"BlogSphere.com/cmd/model"
	"BlogSphere.com/pkg/mq"
	"BlogSphere.com/pkg/security"
)

var (
	reader = &security.Identity{UserID: 10, Username: "reader", Email: "reader@example.com", Role: model.RoleUser}
	admin  = &security.Identity{UserID: 1, Username: "admin", Role: model.RoleAdmin}
)

type fakePosts map[int64]*model.Post

func (f fakePosts) GetPost(_ context.Context, postId int64) (*model.Post, error) {
	return f[postId], nil
}

func newPosts() fakePosts {
	return fakePosts{
		1: {PostId: 1, UserId: 99, Status: model.PostPublished, DislikePolicy: model.DislikeEnabled},
		2: {PostId: 2, UserId: 99, Status: model.PostDraft, DislikePolicy: model.DislikeEnabled},
		3: {PostId: 3, UserId: 99, Status: model.PostPublished, DislikePolicy: model.DislikeDisabled},
	}
}

type pair struct{ post, user int64 }

type fakeReactions struct {
	mu   sync.Mutex
	rows map[model.ReactionKind]map[pair]bool
	fail error
}

func newFakeReactions() *fakeReactions {
	return &fakeReactions{rows: map[model.ReactionKind]map[pair]bool{
		model.ReactionLike:    {},
		model.ReactionDislike: {},
	}}
}

func (f *fakeReactions) Transaction(ctx context.Context, fn func(repo db.ReactionRepo) error) error {
	f.mu.Lock()
	snapshot := make(map[model.ReactionKind]map[pair]bool)
	for k, rows := range f.rows {
		snapshot[k] = make(map[pair]bool)
		for p := range rows {
			snapshot[k][p] = true
		}
	}
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.rows = snapshot
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeReactions) HasReaction(_ context.Context, kind model.ReactionKind, postId, userId int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return false, f.fail
	}
	return f.rows[kind][pair{postId, userId}], nil
}

func (f *fakeReactions) AddReaction(_ context.Context, kind model.ReactionKind, postId, userId int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[kind][pair{postId, userId}] = true
	return nil
}

func (f *fakeReactions) RemoveReaction(_ context.Context, kind model.ReactionKind, postId, userId int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := pair{postId, userId}
	had := f.rows[kind][p]
	delete(f.rows[kind], p)
	return had, nil
}

func (f *fakeReactions) CountReactions(_ context.Context, postId int64) (likes, dislikes int64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for p := range f.rows[model.ReactionLike] {
		if p.post == postId {
			likes++
		}
	}
	for p := range f.rows[model.ReactionDislike] {
		if p.post == postId {
			dislikes++
		}
	}
	return likes, dislikes, nil
}

type fakeLocker struct {
	err   error
	calls int
}

func (f *fakeLocker) Lock(context.Context, int64, int64) (func(), error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return func() {}, nil
}

type fakeProducer struct {
	mu        sync.Mutex
	reactions []*mq.ReactionEvent
	comments  []*mq.CommentEvent
}

func (f *fakeProducer) PublishReactionEvent(_ context.Context, e *mq.ReactionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reactions = append(f.reactions, e)
	return nil
}

func (f *fakeProducer) PublishCommentEvent(_ context.Context, e *mq.CommentEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = append(f.comments, e)
	return nil
}

type fakeComments struct {
	nextId int64
	rows   map[int64]*model.Comment
	now    time.Time
}

func newFakeComments() *fakeComments {
	return &fakeComments{rows: map[int64]*model.Comment{}, now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeComments) CreateComment(_ context.Context, c *model.Comment) error {
	f.nextId++
	f.now = f.now.Add(time.Second)
	c.CommentId = f.nextId
	c.CreatedAt, c.UpdatedAt = f.now, f.now
	cp := *c
	f.rows[c.CommentId] = &cp
	return nil
}

func (f *fakeComments) GetComment(_ context.Context, id int64) (*model.Comment, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComments) UpdateCommentStatus(_ context.Context, id int64, status model.CommentStatus) error {
	if c, ok := f.rows[id]; ok {
		c.Status = status
	}
	return nil
}

func (f *fakeComments) UpdateCommentContent(_ context.Context, id int64, content string) error {
	if c, ok := f.rows[id]; ok {
		c.Content = content
	}
	return nil
}

func (f *fakeComments) DeleteCommentTree(_ context.Context, id int64) error {
	for cid, c := range f.rows {
		if cid == id || (c.ParentCommentId != nil && *c.ParentCommentId == id) {
			delete(f.rows, cid)
		}
	}
	return nil
}

func (f *fakeComments) sorted() []*model.Comment {
	list := make([]*model.Comment, 0, len(f.rows))
	for _, c := range f.rows {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CommentId < list[j].CommentId })
	return list
}

func (f *fakeComments) ListCommentsByStatus(_ context.Context, status model.CommentStatus, offset, limit int) ([]*model.Comment, int64, error) {
	matched := make([]*model.Comment, 0)
	for _, c := range f.sorted() {
		if status == "" || c.Status == status {
			matched = append(matched, c)
		}
	}
	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeComments) ListApprovedComments(_ context.Context, postId int64) ([]*model.Comment, error) {
	list := make([]*model.Comment, 0)
	for _, c := range f.sorted() {
		if c.PostId == postId && c.Status == model.CommentApproved {
			list = append(list, c)
		}
	}
	return list, nil
}

type fakeLimiter struct {
	counts map[string]int64
	keys   []string
	err    error
}

func (f *fakeLimiter) Allow(_ context.Context, key string, limit int64, _ time.Duration) (*security.RateLimitResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.keys = append(f.keys, key)
	if f.counts[key] >= limit {
		return &security.RateLimitResult{Allowed: false, Count: f.counts[key]}, nil
	}
	f.counts[key]++
	return &security.RateLimitResult{Allowed: true, Count: f.counts[key]}, nil
}

type broadcastRecord struct {
	postId int64
	id     int64
	html   string
}

type fakeBroadcaster struct {
	sent []broadcastRecord
}

func (f *fakeBroadcaster) BroadcastComment(postId int64, c *model.Comment, html string) {
	f.sent = append(f.sent, broadcastRecord{postId, c.CommentId, html})
}

var errDatabase = errors.New("connection refused")

type fakeThreadCache struct {
	threads     map[int64][]*model.CommentThread
	invalidated []int64
}

func newFakeThreadCache() *fakeThreadCache {
	return &fakeThreadCache{threads: map[int64][]*model.CommentThread{}}
}

func (f *fakeThreadCache) GetThreads(_ context.Context, postId int64) ([]*model.CommentThread, error) {
	return f.threads[postId], nil
}

func (f *fakeThreadCache) SetThreads(_ context.Context, postId int64, threads []*model.CommentThread) error {
	f.threads[postId] = threads
	return nil
}

func (f *fakeThreadCache) Invalidate(_ context.Context, postId int64) error {
	delete(f.threads, postId)
	f.invalidated = append(f.invalidated, postId)
	return nil
}
