// Package store persists ingested articles and community posts in an
// embedded Badger database.
package store

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ppiankov/finbrief/internal/model"
)

// Article is a stored news article, unique per provider and canonical URL
type Article struct {
	ID           string
	Provider     string
	CanonicalURL string
	Title        string
	Description  string
	Content      string
	HasContent   bool
	Link         string
	OriginalLink string
	PublishedAt  time.Time `badgerhold:"index"`
	FetchedAt    time.Time
}

// Post is a community post used as briefing input
type Post struct {
	ID        string    `yaml:"-"`
	Title     string    `yaml:"title"`
	Content   string    `yaml:"content"`
	Author    string    `yaml:"author,omitempty"`
	CreatedAt time.Time `yaml:"created_at" badgerhold:"index"`
}

// Store wraps the badgerhold database
type Store struct {
	db     *badgerhold.Store
	logger arbor.ILogger
}

// Open opens or creates the database at cfg.Path
func Open(cfg model.StoreConfig, logger arbor.ILogger) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = cfg.Path
	options.ValueDir = cfg.Path
	options.Logger = nil

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger.Debug().Str("path", cfg.Path).Msg("Article store opened")
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ArticleKey is the md5 of provider and canonical URL
func ArticleKey(provider, canonicalURL string) string {
	sum := md5.Sum([]byte(provider + "|" + canonicalURL))
	return hex.EncodeToString(sum[:])
}

// SaveArticles inserts candidates that are not stored yet and returns how
// many were new. Candidates without a canonical URL are skipped.
func (s *Store) SaveArticles(provider string, items []model.Candidate, fetchedAt time.Time) (int, error) {
	saved := 0
	for _, c := range items {
		canonical := strings.TrimSpace(c.OriginalLink)
		if canonical == "" {
			canonical = strings.TrimSpace(c.Link)
		}
		if canonical == "" {
			continue
		}

		text, ok := c.Body.Get()
		a := Article{
			ID:           ArticleKey(provider, canonical),
			Provider:     provider,
			CanonicalURL: canonical,
			Title:        c.Title,
			Description:  c.Description,
			Content:      text,
			HasContent:   ok,
			Link:         c.Link,
			OriginalLink: c.OriginalLink,
			PublishedAt:  c.PublishedAt,
			FetchedAt:    fetchedAt,
		}

		err := s.db.Insert(a.ID, a)
		if errors.Is(err, badgerhold.ErrKeyExists) {
			continue
		}
		if err != nil {
			return saved, fmt.Errorf("insert article %s: %w", canonical, err)
		}
		saved++
	}

	s.logger.Debug().Int("offered", len(items)).Int("saved", saved).Msg("Articles stored")
	return saved, nil
}

// RecentArticles returns articles published at or after since, newest first.
// limit <= 0 returns all of them.
func (s *Store) RecentArticles(since time.Time, limit int) ([]Article, error) {
	query := badgerhold.Where("PublishedAt").Ge(since).SortBy("PublishedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var out []Article
	if err := s.db.Find(&out, query); err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	return out, nil
}

// GetArticle loads one article by key
func (s *Store) GetArticle(id string) (*Article, error) {
	var a Article
	if err := s.db.Get(id, &a); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("article not found: %s", id)
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &a, nil
}

// PostKey identifies a post by title and creation time
func PostKey(p Post) string {
	sum := md5.Sum([]byte(p.Title + "|" + p.CreatedAt.UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])
}

// SavePosts upserts community posts and returns how many were written
func (s *Store) SavePosts(posts []Post) (int, error) {
	saved := 0
	for _, p := range posts {
		if strings.TrimSpace(p.Title) == "" {
			continue
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now()
		}
		p.ID = PostKey(p)

		if err := s.db.Upsert(p.ID, p); err != nil {
			return saved, fmt.Errorf("upsert post %q: %w", p.Title, err)
		}
		saved++
	}
	return saved, nil
}

// RecentPosts returns posts created at or after since, newest first
func (s *Store) RecentPosts(since time.Time, limit int) ([]Post, error) {
	query := badgerhold.Where("CreatedAt").Ge(since).SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var out []Post
	if err := s.db.Find(&out, query); err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	return out, nil
}

// PruneArticles deletes articles published before cutoff
func (s *Store) PruneArticles(cutoff time.Time) error {
	if err := s.db.DeleteMatching(&Article{}, badgerhold.Where("PublishedAt").Lt(cutoff)); err != nil {
		return fmt.Errorf("prune articles: %w", err)
	}
	return nil
}
