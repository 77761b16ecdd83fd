package service

import (
	"context"
	"sort"
	"strings"

	"github.com/d60-Lab/osuda/internal/model"
	"github.com/d60-Lab/osuda/internal/repository"
)

const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// QueryParams are the list filters. Zero values mean "no filtering on that
// dimension"; all supplied filters are ANDed.
type QueryParams struct {
	Search  string // case-insensitive substring on content
	Keyword string // case-insensitive substring on the raw keywords field
	Date    string // calendar-day prefix of the effective date
	Sort    string // newest (default) or oldest
}

// DayStat is one calendar day with at least one post.
type DayStat struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PostService layers read-side queries over the repository snapshot. All
// methods are pure with respect to the collection.
type PostService interface {
	ListPosts(ctx context.Context, params QueryParams) []model.Post
	Keywords(ctx context.Context) []string
	Stats(ctx context.Context, startDate, endDate string) []DayStat
}

type postService struct {
	repo repository.PostRepository
}

func NewPostService(repo repository.PostRepository) PostService {
	return &postService{repo: repo}
}

func (s *postService) ListPosts(ctx context.Context, params QueryParams) []model.Post {
	posts := s.repo.List(ctx)
	posts = filterPosts(posts, params)
	sortPosts(posts, params.Sort)
	return posts
}

func filterPosts(posts []model.Post, params QueryParams) []model.Post {
	out := posts[:0]
	search := strings.ToLower(params.Search)
	keyword := strings.ToLower(params.Keyword)
	for _, p := range posts {
		if search != "" && !strings.Contains(strings.ToLower(p.Content), search) {
			continue
		}
		// Matches the raw comma-joined field, not the parsed tag set; a term
		// spanning a comma boundary behaves accordingly.
		if keyword != "" && !strings.Contains(strings.ToLower(p.Keywords), keyword) {
			continue
		}
		if params.Date != "" && !strings.HasPrefix(p.EffectiveDate(), params.Date) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortPosts orders by effective time, stable so that equal (or unparseable)
// dates keep collection order.
func sortPosts(posts []model.Post, order string) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, tj := posts[i].EffectiveTime(), posts[j].EffectiveTime()
		if order == SortOldest {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})
}

// Keywords splits every post's keywords field on commas and returns the
// unique trimmed tokens in discovery order. Recomputed per call; the
// collection is small enough that caching would only add staleness.
func (s *postService) Keywords(ctx context.Context) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range s.repo.List(ctx) {
		if strings.TrimSpace(p.Keywords) == "" {
			continue
		}
		for _, token := range strings.Split(p.Keywords, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	return out
}

// Stats buckets posts by effective-date calendar day. With both bounds set
// the range is inclusive and compared lexicographically, which is exact for
// zero-padded ISO day strings; otherwise the whole collection is aggregated.
// Days without posts are absent from the result.
func (s *postService) Stats(ctx context.Context, startDate, endDate string) []DayStat {
	counts := make(map[string]int)
	ranged := startDate != "" && endDate != ""
	for _, p := range s.repo.List(ctx) {
		day := p.Day()
		if ranged && (day < startDate || day > endDate) {
			continue
		}
		counts[day]++
	}
	out := make([]DayStat, 0, len(counts))
	for day, count := range counts {
		out = append(out, DayStat{Date: day, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
