package store

import (
	"context"
	"time"

	"github.com/shashiranjanraj/freshko/app/models"
	"github.com/shashiranjanraj/freshko/pkg/bus"
)

// NewArticle is the input for user-created content.
type NewArticle struct {
	Title    string
	Excerpt  string
	Content  string
	Tags     []string
	Category string
	Author   string
	Image    string
}

// ArticlePatch is a field-merge update; nil fields are left untouched.
type ArticlePatch struct {
	Title    *string
	Excerpt  *string
	Content  *string
	Tags     *[]string
	Category *string
	Image    *string
}

// CreateArticle appends a user-created article and publishes articleCreated.
func (s *Store) CreateArticle(ctx context.Context, in NewArticle) (models.Article, Result) {
	s.ensureHydrated(ctx)

	s.mu.Lock()

	if in.Title == "" {
		s.mu.Unlock()
		return models.Article{}, fail(CodeInvalidInput, "Title is required")
	}

	a := models.Article{
		ID:         s.nextArticleIDLocked(),
		Title:      in.Title,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		Tags:       in.Tags,
		Category:   in.Category,
		Author:     in.Author,
		Date:       time.Now().Format("2006-01-02"),
		Image:      in.Image,
		IsEditable: true,
		CreatedBy:  models.OriginUser,
	}

	s.articles = append(s.articles, a)
	s.persistArticles(ctx)
	s.mu.Unlock()

	s.publish(bus.ArticleCreated)
	return a, ok("Article published")
}

// UpdateArticle merges patch into the article. Seed content is immutable.
func (s *Store) UpdateArticle(ctx context.Context, id int, patch ArticlePatch) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()

	a := s.findArticleLocked(id)
	if a == nil {
		s.mu.Unlock()
		return fail(CodeNotFound, "Article not found")
	}
	if !a.Editable() {
		s.mu.Unlock()
		return fail(CodeNotEditable, "This article is part of the original content and cannot be modified")
	}

	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Excerpt != nil {
		a.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}
	if patch.Tags != nil {
		a.Tags = *patch.Tags
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.Image != nil {
		a.Image = *patch.Image
	}

	s.persistArticles(ctx)
	s.mu.Unlock()

	s.publish(bus.ArticleUpdated)
	return ok("Article updated")
}

// DeleteArticle removes a user-created article and publishes articleDeleted.
// Seed content fails with NotEditable and the store is left unchanged.
func (s *Store) DeleteArticle(ctx context.Context, id int) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()

	idx := -1
	for i := range s.articles {
		if s.articles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fail(CodeNotFound, "Article not found")
	}
	if !s.articles[idx].Editable() {
		s.mu.Unlock()
		return fail(CodeNotEditable, "This article is part of the original content and cannot be deleted")
	}

	s.articles = append(s.articles[:idx], s.articles[idx+1:]...)
	s.persistArticles(ctx)
	s.mu.Unlock()

	s.publish(bus.ArticleDeleted)
	return ok("Article deleted")
}

// GetAllArticles returns a copy of every article.
func (s *Store) GetAllArticles(ctx context.Context) []models.Article {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Article, len(s.articles))
	copy(out, s.articles)
	return out
}

// GetArticleByID is a pure read over current in-memory state.
func (s *Store) GetArticleByID(ctx context.Context, id int) (models.Article, bool) {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if a := s.findArticleLocked(id); a != nil {
		return *a, true
	}
	return models.Article{}, false
}

func (s *Store) findArticleLocked(id int) *models.Article {
	for i := range s.articles {
		if s.articles[i].ID == id {
			return &s.articles[i]
		}
	}
	return nil
}

func (s *Store) nextArticleIDLocked() int {
	next := 1
	for _, a := range s.articles {
		if a.ID >= next {
			next = a.ID + 1
		}
	}
	return next
}
