// Package translator provides translation provider implementations.
// It includes a DeepL REST adapter with quota tracking and an OpenAI adapter
// used as the fallback, both with circuit breaker and retry logic.
package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"daily-wisdom/internal/domain/entity"
	"daily-wisdom/internal/observability/metrics"
	"daily-wisdom/internal/resilience/circuitbreaker"
	"daily-wisdom/internal/resilience/retry"
	"daily-wisdom/internal/usecase/translation"
)

const (
	// defaultDeepLBaseURL targets the free tier endpoint. Override with
	// DEEPL_API_URL for the pro tier or tests.
	defaultDeepLBaseURL = "https://api-free.deepl.com/v2"

	// quotaCacheTTL is how long a fetched quota snapshot stays valid.
	quotaCacheTTL = 5 * time.Minute

	// quotaSafetyThreshold is the character reserve under which a fresh
	// quota snapshot marks the provider unavailable. The pre-flight check
	// in Translate compares against the full remaining quota instead, so
	// an article that genuinely fits is never turned away.
	quotaSafetyThreshold = 1000
)

// deeplLangMap maps supported languages to DeepL target codes.
// Languages absent here (Arabic) are not translatable by DeepL and are
// served by the fallback provider. Portuguese maps to the Brazilian variant.
var deeplLangMap = map[entity.Language]string{
	entity.LangSpanish:    "ES",
	entity.LangFrench:     "FR",
	entity.LangGerman:     "DE",
	entity.LangPortuguese: "PT-BR",
	entity.LangItalian:    "IT",
	entity.LangDutch:      "NL",
	entity.LangRussian:    "RU",
	entity.LangJapanese:   "JA",
	entity.LangChinese:    "ZH",
	entity.LangKorean:     "KO",
}

// DeepL implements translation.Provider against the DeepL v2 REST API.
// It tracks the character quota and refuses articles that would not fit,
// so quota exhaustion surfaces before any characters are spent.
type DeepL struct {
	apiKey         string
	baseURL        string
	httpClient     *http.Client
	limiter        *rate.Limiter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config

	mu           sync.Mutex
	quota        translation.QuotaInfo
	quotaFetched time.Time
}

// NewDeepL creates a DeepL translator with the given API key.
// An empty API key yields a provider that reports itself unavailable.
//
// Environment variables:
//   - DEEPL_API_URL: API base URL (default: free tier endpoint)
func NewDeepL(apiKey string) *DeepL {
	baseURL := os.Getenv("DEEPL_API_URL")
	if baseURL == "" {
		baseURL = defaultDeepLBaseURL
	}

	slog.Info("Initialized DeepL translator",
		slog.String("base_url", baseURL),
		slog.Bool("configured", apiKey != ""))

	return &DeepL{
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		limiter:        rate.NewLimiter(rate.Every(250*time.Millisecond), 2),
		circuitBreaker: circuitbreaker.New(circuitbreaker.DeepLAPIConfig()),
		retryConfig:    retry.TranslationSegmentConfig(),
	}
}

// Name identifies the provider in logs and metrics.
func (d *DeepL) Name() string {
	return "deepl"
}

// Available reports whether the provider holds an API key and, when a fresh
// quota snapshot exists, whether that snapshot leaves room above the safety
// threshold. With no fresh snapshot the provider is optimistic; the
// pre-flight quota check in Translate settles the question.
func (d *DeepL) Available() bool {
	if d.apiKey == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.quotaFetched.IsZero() && time.Since(d.quotaFetched) < quotaCacheTTL {
		return d.quota.Remaining() >= quotaSafetyThreshold
	}
	return true
}

// SupportsLanguage reports whether DeepL can translate into lang.
func (d *DeepL) SupportsLanguage(lang entity.Language) bool {
	_, ok := deeplLangMap[lang]
	return ok
}

// CheckQuota returns the current character quota, serving a cached snapshot
// unless forceRefresh is set or the cache is older than quotaCacheTTL.
func (d *DeepL) CheckQuota(ctx context.Context, forceRefresh bool) (translation.QuotaInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !forceRefresh && !d.quotaFetched.IsZero() && time.Since(d.quotaFetched) < quotaCacheTTL {
		return d.quota, nil
	}

	quota, err := d.fetchUsage(ctx)
	if err != nil {
		return translation.QuotaInfo{}, err
	}

	d.quota = quota
	d.quotaFetched = time.Now()
	metrics.UpdateQuotaRemaining(d.Name(), quota.Remaining())

	slog.InfoContext(ctx, "deepl quota refreshed",
		slog.Int64("character_count", quota.CharacterCount),
		slog.Int64("character_limit", quota.CharacterLimit),
		slog.Float64("percentage_used", quota.PercentageUsed()))

	return quota, nil
}

func (d *DeepL) fetchUsage(ctx context.Context) (translation.QuotaInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/usage", nil)
	if err != nil {
		return translation.QuotaInfo{}, fmt.Errorf("build usage request: %w", err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return translation.QuotaInfo{}, fmt.Errorf("deepl usage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return translation.QuotaInfo{}, fmt.Errorf("deepl usage returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var usage struct {
		CharacterCount int64 `json:"character_count"`
		CharacterLimit int64 `json:"character_limit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&usage); err != nil {
		return translation.QuotaInfo{}, fmt.Errorf("decode usage response: %w", err)
	}

	return translation.QuotaInfo{
		CharacterCount: usage.CharacterCount,
		CharacterLimit: usage.CharacterLimit,
	}, nil
}

// Translate renders the base article in target. The quota pre-flight runs
// first; an article that would not fit in the remaining budget fails with
// InsufficientQuotaError without touching the translation endpoint.
func (d *DeepL) Translate(ctx context.Context, base *entity.Article, target entity.Language) (*translation.Result, error) {
	code, ok := deeplLangMap[target]
	if !ok {
		return nil, fmt.Errorf("deepl does not support language %q", target)
	}

	quota, err := d.CheckQuota(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("quota check: %w", err)
	}

	needed := int64(base.TextLength())
	if needed > quota.Remaining() {
		return nil, &translation.InsufficientQuotaError{
			Needed:    needed,
			Remaining: quota.Remaining(),
		}
	}

	title, err := d.translateSegment(ctx, base.Title, code)
	if err != nil {
		return nil, fmt.Errorf("translate title: %w", err)
	}

	content, err := d.translateSegment(ctx, base.Content, code)
	if err != nil {
		return nil, fmt.Errorf("translate content: %w", err)
	}

	return &translation.Result{Title: title, Content: content}, nil
}

// translateSegment translates one text segment with retry, rate limiting and
// circuit breaking. Title and content are separate segments so a long body
// never drags the title down with it.
func (d *DeepL) translateSegment(ctx context.Context, text, targetCode string) (string, error) {
	var result string

	retryErr := retry.Do(ctx, d.retryConfig, func() error {
		if err := d.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		cbResult, err := d.circuitBreaker.Execute(func() (interface{}, error) {
			return d.doTranslate(ctx, text, targetCode)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("deepl api circuit breaker open, request rejected",
					slog.String("service", "deepl-api"),
					slog.String("state", d.circuitBreaker.State().String()))
				return fmt.Errorf("deepl api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", retryErr
	}

	return result, nil
}

func (d *DeepL) doTranslate(ctx context.Context, text, targetCode string) (string, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("source_lang", "EN")
	form.Set("target_lang", targetCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepl translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("deepl translate returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if len(payload.Translations) == 0 {
		return "", fmt.Errorf("deepl translate returned no translations")
	}

	return payload.Translations[0].Text, nil
}
