package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type SearchKind string

const (
	KindPost     SearchKind = "post"
	KindComment  SearchKind = "comment"
	KindUser     SearchKind = "user"
	KindCategory SearchKind = "category"
	KindTag      SearchKind = "tag"
	KindSupport  SearchKind = "support_message"
)

type SearchResult struct {
	Kind    SearchKind `json:"kind"`
	Id      int64      `json:"id"`
	Title   string     `json:"title"`
	Snippet string     `json:"snippet"`
}

type Searcher interface {
	Search(ctx context.Context, kind SearchKind, q string, limit int) ([]*SearchResult, error)
}

type kindQuery struct {
	table   string
	id      string
	title   string
	snippet string
	match   []string
}

var kindQueries = map[SearchKind]kindQuery{
	KindPost:     {"posts", "post_id", "title", "content", []string{"title", "content"}},
	KindComment:  {"comments", "comment_id", "author_name", "content", []string{"content", "author_name"}},
	KindUser:     {"users", "user_id", "user_name", "email", []string{"user_name", "email"}},
	KindCategory: {"categories", "category_id", "name", "description", []string{"name", "description"}},
	KindTag:      {"tags", "tag_id", "name", "name", []string{"name"}},
	KindSupport:  {"support_messages", "message_id", "name", "message", []string{"name", "email", "message"}},
}

const snippetLength = 120

type SearchDB struct {
	db *gorm.DB
}

var _ Searcher = (*SearchDB)(nil)

func NewSearchDB(db *gorm.DB) *SearchDB {
	return &SearchDB{db: db}
}

// escapeLike makes q match literally inside a LIKE pattern escaped with '!'.
func escapeLike(q string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(q)
}

func (r *SearchDB) Search(ctx context.Context, kind SearchKind, q string, limit int) ([]*SearchResult, error) {
	kq, ok := kindQueries[kind]
	if !ok {
		return nil, fmt.Errorf("unknown search kind %q", kind)
	}
	pattern := "%" + escapeLike(q) + "%"

	conds := make([]string, 0, len(kq.match))
	args := make([]interface{}, 0, len(kq.match))
	for _, col := range kq.match {
		conds = append(conds, col+" LIKE ? ESCAPE '!'")
		args = append(args, pattern)
	}

	var rows []*SearchResult
	err := r.db.WithContext(ctx).Table(kq.table).
		Select(fmt.Sprintf("%s AS id, %s AS title, %s AS snippet", kq.id, kq.title, kq.snippet)).
		Where(strings.Join(conds, " OR "), args...).
		Order(kq.id + " DESC").Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.Kind = kind
		if s := []rune(row.Snippet); len(s) > snippetLength {
			row.Snippet = string(s[:snippetLength]) + "…"
		}
	}
	return rows, nil
}
