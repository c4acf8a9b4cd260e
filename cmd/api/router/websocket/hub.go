package websocket

import (
	"encoding/json"
	"sync"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"BlogSphere.com/cmd/model"
)

const sendBuffer = 16

// LiveComment is the frame pushed to readers of a post.
type LiveComment struct {
	Type            string `json:"type"`
	PostId          int64  `json:"post_id"`
	CommentId       int64  `json:"comment_id"`
	ParentCommentId *int64 `json:"parent_comment_id,omitempty"`
	Html            string `json:"comment_html"`
}

type subscriber struct {
	send chan []byte
}

// CommentHub fans approved comments out to the websocket readers of each
// post.
type CommentHub struct {
	mu   sync.RWMutex
	subs map[int64]map[*subscriber]struct{}
}

func NewCommentHub() *CommentHub {
	return &CommentHub{subs: make(map[int64]map[*subscriber]struct{})}
}

// Subscribe registers a reader of postId. The returned func unregisters it
// and closes the channel.
func (h *CommentHub) Subscribe(postId int64) (<-chan []byte, func()) {
	s := &subscriber{send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.subs[postId] == nil {
		h.subs[postId] = make(map[*subscriber]struct{})
	}
	h.subs[postId][s] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return s.send, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[postId], s)
			if len(h.subs[postId]) == 0 {
				delete(h.subs, postId)
			}
			h.mu.Unlock()
			close(s.send)
		})
	}
}

func (h *CommentHub) Subscribers(postId int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[postId])
}

// BroadcastComment never blocks: a reader whose buffer is full misses the
// frame.
func (h *CommentHub) BroadcastComment(postId int64, comment *model.Comment, html string) {
	msg, err := json.Marshal(&LiveComment{
		Type:            "comment",
		PostId:          postId,
		CommentId:       comment.CommentId,
		ParentCommentId: comment.ParentCommentId,
		Html:            html,
	})
	if err != nil {
		hlog.Errorf("marshal live comment %d: %v", comment.CommentId, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[postId] {
		select {
		case s.send <- msg:
		default:
			hlog.Warnf("live comment %d dropped for a slow reader of post %d", comment.CommentId, postId)
		}
	}
}
