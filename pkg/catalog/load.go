package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/electa-dev/electa/internal/errors"
)

// Loader decodes data files from a Source. Every load fails soft: fetch or
// decode failures are logged and the empty value is returned, so pages
// render their empty state.
type Loader struct {
	src     Source
	timeout time.Duration
	logger  *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithLogger sets the logger used for load failures.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader over src.
func NewLoader(src Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		src:    src,
		logger: slog.Default().With("component", "catalog"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) fetch(ctx context.Context, name string) ([]byte, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	data, err := l.src.Fetch(ctx, name)
	if err != nil {
		return nil, errors.New("E101").Wrap(err).WithDetail(name)
	}
	return data, nil
}

// FetchDirectory loads the candidate directory, returning the error.
// A payload without a "candidates" member is read as the bare
// electorate map.
func (l *Loader) FetchDirectory(ctx context.Context) (Directory, error) {
	data, err := l.fetch(ctx, CandidatesFile)
	if err != nil {
		return Directory{}, err
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Directory{}, errors.New("E102").Wrap(err).WithDetail(CandidatesFile)
	}

	var dir Directory
	if raw, ok := probe["candidates"]; ok {
		if err := json.Unmarshal(data, &dir); err != nil {
			return Directory{}, errors.New("E102").Wrap(err).WithDetail(CandidatesFile)
		}
		if string(raw) == "null" {
			dir.Candidates = nil
		}
	} else {
		dir.Candidates = make(map[string][]Candidate, len(probe))
		for electorate, raw := range probe {
			var list []Candidate
			if err := json.Unmarshal(raw, &list); err != nil {
				// Non-list members (e.g. metadata) are not electorates.
				continue
			}
			dir.Candidates[electorate] = list
		}
	}
	if dir.Candidates == nil {
		dir.Candidates = map[string][]Candidate{}
	}
	return dir, nil
}

// LoadDirectory is FetchDirectory failing soft to an empty directory.
func (l *Loader) LoadDirectory(ctx context.Context) Directory {
	dir, err := l.FetchDirectory(ctx)
	if err != nil {
		l.logger.Error("load candidates failed", "error", err)
		return Directory{Candidates: map[string][]Candidate{}}
	}
	return dir
}

// FetchShop loads the shop catalogue.
func (l *Loader) FetchShop(ctx context.Context) ([]Product, error) {
	data, err := l.fetch(ctx, ShopFile)
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, errors.New("E102").Wrap(err).WithDetail(ShopFile)
	}
	return products, nil
}

// LoadShop is FetchShop failing soft to an empty catalogue.
func (l *Loader) LoadShop(ctx context.Context) []Product {
	products, err := l.FetchShop(ctx)
	if err != nil {
		l.logger.Error("load shop failed", "error", err)
		return []Product{}
	}
	if products == nil {
		return []Product{}
	}
	return products
}

// FetchArticles loads the blog, sorted newest first. Articles with an
// unparseable date sort after dated ones, keeping file order.
func (l *Loader) FetchArticles(ctx context.Context) ([]Article, error) {
	data, err := l.fetch(ctx, ArticlesFile)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Articles []Article `json:"articles"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.New("E102").Wrap(err).WithDetail(ArticlesFile)
	}
	SortNewestFirst(payload.Articles)
	return payload.Articles, nil
}

// LoadArticles is FetchArticles failing soft to no articles.
func (l *Loader) LoadArticles(ctx context.Context) []Article {
	articles, err := l.FetchArticles(ctx)
	if err != nil {
		l.logger.Error("load articles failed", "error", err)
		return []Article{}
	}
	if articles == nil {
		return []Article{}
	}
	return articles
}

// SortNewestFirst orders articles by descending date in place.
func SortNewestFirst(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		ti, oki := articles[i].PublishedAt()
		tj, okj := articles[j].PublishedAt()
		switch {
		case oki && okj:
			return ti.After(tj)
		case oki:
			return true
		default:
			return false
		}
	})
}
