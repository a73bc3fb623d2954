package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-wisdom/internal/domain/entity"
)

// MockProvider implements Provider for testing.
type MockProvider struct {
	available  bool
	generateFn func(ctx context.Context, date string) (*RawResponse, error)
	calls      int
}

func (m *MockProvider) Available() bool {
	return m.available
}

func (m *MockProvider) Generate(ctx context.Context, date string) (*RawResponse, error) {
	m.calls++
	if m.generateFn != nil {
		return m.generateFn(ctx, date)
	}
	return &RawResponse{Text: "# Test Wisdom\n\nBody text."}, nil
}

// memoryRepo is an in-memory ArticleRepository keyed by (date, language).
type memoryRepo struct {
	articles map[string]*entity.Article
	getErr   error
	saveErr  error
	saves    int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{articles: make(map[string]*entity.Article)}
}

func repoKey(date string, language entity.Language) string {
	return date + "|" + string(language)
}

func (r *memoryRepo) GetArticle(_ context.Context, date string, language entity.Language) (*entity.Article, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.articles[repoKey(date, language)], nil
}

func (r *memoryRepo) SaveArticle(_ context.Context, article *entity.Article) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.articles[repoKey(article.Date, article.Language)] = article
	return nil
}

func (r *memoryRepo) HasArticleForDate(_ context.Context, date string) (bool, error) {
	_, ok := r.articles[repoKey(date, entity.BaseLanguage)]
	return ok, nil
}

func (r *memoryRepo) HasTranslation(_ context.Context, date string, language entity.Language) (bool, error) {
	_, ok := r.articles[repoKey(date, language)]
	return ok, nil
}

func (r *memoryRepo) ListAvailableDates(_ context.Context) ([]string, error) {
	dates := make([]string, 0, len(r.articles))
	for _, a := range r.articles {
		if a.IsBase() {
			dates = append(dates, a.Date)
		}
	}
	return dates, nil
}

func (r *memoryRepo) ResetDatabase(_ context.Context) error {
	r.articles = make(map[string]*entity.Article)
	return nil
}

func TestService_GenerateArticle_Success(t *testing.T) {
	repo := newMemoryRepo()
	provider := &MockProvider{available: true}
	service := NewService(repo, provider)

	article, err := service.GenerateArticle(context.Background(), "2025-06-15")

	require.NoError(t, err)
	assert.Equal(t, "Test Wisdom", article.Title)
	assert.Equal(t, "2025-06-15", article.Date)
	assert.Equal(t, entity.BaseLanguage, article.Language)
	assert.False(t, article.IsTranslated)
	assert.Equal(t, 1, repo.saves)
}

func TestService_GenerateArticle_CacheHitSkipsProvider(t *testing.T) {
	repo := newMemoryRepo()
	provider := &MockProvider{available: true}
	service := NewService(repo, provider)

	first, err := service.GenerateArticle(context.Background(), "2025-06-15")
	require.NoError(t, err)

	second, err := service.GenerateArticle(context.Background(), "2025-06-15")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls, "provider must be called at most once per date")
	assert.Equal(t, 1, repo.saves)
}

func TestService_RegenerateArticle_BypassesCache(t *testing.T) {
	repo := newMemoryRepo()
	provider := &MockProvider{available: true}
	service := NewService(repo, provider)

	_, err := service.GenerateArticle(context.Background(), "2025-06-15")
	require.NoError(t, err)

	_, err = service.RegenerateArticle(context.Background(), "2025-06-15")
	require.NoError(t, err)

	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, 2, repo.saves)
}

func TestService_GenerateArticle_NoProvider(t *testing.T) {
	repo := newMemoryRepo()
	service := NewService(repo, nil)

	article, err := service.GenerateArticle(context.Background(), "2025-06-15")

	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Nil(t, article)
}

func TestService_GenerateArticle_ProviderUnavailable(t *testing.T) {
	repo := newMemoryRepo()
	provider := &MockProvider{available: false}
	service := NewService(repo, provider)

	_, err := service.GenerateArticle(context.Background(), "2025-06-15")

	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, 0, provider.calls)
}

func TestService_GenerateArticle_ProviderError(t *testing.T) {
	repo := newMemoryRepo()
	providerErr := errors.New("upstream exploded")
	provider := &MockProvider{
		available: true,
		generateFn: func(context.Context, string) (*RawResponse, error) {
			return nil, providerErr
		},
	}
	service := NewService(repo, provider)

	article, err := service.GenerateArticle(context.Background(), "2025-06-15")

	assert.ErrorIs(t, err, providerErr)
	assert.Nil(t, article)
	assert.Equal(t, 0, repo.saves)
}

func TestService_GenerateArticle_RepoLookupError(t *testing.T) {
	repo := newMemoryRepo()
	repo.getErr = errors.New("connection refused")
	provider := &MockProvider{available: true}
	service := NewService(repo, provider)

	_, err := service.GenerateArticle(context.Background(), "2025-06-15")

	require.Error(t, err)
	assert.Equal(t, 0, provider.calls, "lookup failure must not trigger generation")
}

func TestService_GenerateArticle_SaveError(t *testing.T) {
	repo := newMemoryRepo()
	repo.saveErr = errors.New("disk full")
	provider := &MockProvider{available: true}
	service := NewService(repo, provider)

	article, err := service.GenerateArticle(context.Background(), "2025-06-15")

	require.Error(t, err)
	assert.Nil(t, article)
}

func TestService_GenerateArticle_InvalidDate(t *testing.T) {
	repo := newMemoryRepo()
	provider := &MockProvider{available: true}
	service := NewService(repo, provider)

	// The provider fires, but the built article fails validation before save.
	_, err := service.GenerateArticle(context.Background(), "not-a-date")

	require.Error(t, err)
	assert.Equal(t, 0, repo.saves)
}
