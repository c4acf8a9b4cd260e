package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"BlogSphere.com/cmd/admin/dal/db"
	"BlogSphere.com/pkg/errno"
)

// AdminPage identifies a back-office page. Each page searches a fixed set
// of entity kinds.
type AdminPage string

const (
	PageDashboard  AdminPage = "dashboard"
	PagePosts      AdminPage = "posts"
	PageComments   AdminPage = "comments"
	PageUsers      AdminPage = "users"
	PageCategories AdminPage = "categories"
	PageSupport    AdminPage = "support"
)

var pageKinds = map[AdminPage][]db.SearchKind{
	PageDashboard:  {db.KindPost, db.KindComment, db.KindUser},
	PagePosts:      {db.KindPost},
	PageComments:   {db.KindComment},
	PageUsers:      {db.KindUser},
	PageCategories: {db.KindCategory, db.KindTag},
	PageSupport:    {db.KindSupport},
}

// KindsFor returns the entity kinds searchable from page.
func KindsFor(page AdminPage) ([]db.SearchKind, bool) {
	kinds, ok := pageKinds[page]
	return kinds, ok
}

const (
	maxQueryLength = 100
	resultsPerKind = 10
)

type SearchResults struct {
	Page    AdminPage          `json:"page"`
	Query   string             `json:"query"`
	Results []*db.SearchResult `json:"results"`
}

type SearchService struct {
	searcher db.Searcher
}

func NewSearchService(searcher db.Searcher) *SearchService {
	return &SearchService{searcher: searcher}
}

// Search runs q against every kind allowed on page and concatenates the
// results in the page's kind order.
func (service *SearchService) Search(ctx context.Context, page AdminPage, q string) (*SearchResults, error) {
	kinds, ok := KindsFor(page)
	if !ok {
		return nil, errno.ParamErr.WithMessage("Unknown admin page")
	}
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) > maxQueryLength {
		return nil, errno.ParamErr.WithMessage("Search query is too long")
	}

	out := &SearchResults{Page: page, Query: q, Results: make([]*db.SearchResult, 0)}
	if q == "" {
		return out, nil
	}
	for _, kind := range kinds {
		results, err := service.searcher.Search(ctx, kind, q, resultsPerKind)
		if err != nil {
			return nil, errors.WithMessagef(err, "search %s", kind)
		}
		out.Results = append(out.Results, results...)
	}
	return out, nil
}
