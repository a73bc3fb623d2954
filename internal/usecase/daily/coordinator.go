// Package daily coordinates the full content pipeline for one calendar day:
// generate the base-language article exactly once, then fan out translations
// to every target language. Translation failures are isolated per language so
// one bad provider response never loses the rest of the day's content.
package daily

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"daily-wisdom/internal/domain/entity"
	"daily-wisdom/internal/observability/metrics"
	"daily-wisdom/internal/repository"
	"daily-wisdom/internal/resilience/retry"
	"daily-wisdom/internal/usecase/generation"
	"daily-wisdom/internal/usecase/translation"
)

// translationParallelism bounds concurrent translation calls during fan-out.
const translationParallelism = 4

// Options controls one coordination run.
type Options struct {
	// Force regenerates the base article and retranslates every language,
	// overwriting cached content.
	Force bool

	// TranslationsOnly skips base generation entirely. With no stored base
	// article the run settles cleanly without doing any work; translations
	// never generate.
	TranslationsOnly bool
}

// Result summarizes one coordination run.
type Result struct {
	Date       string
	Generated  bool
	Translated []entity.Language
	Failed     map[entity.Language]error
}

// Success reports whether every translation target settled successfully.
func (r *Result) Success() bool {
	return len(r.Failed) == 0
}

// dayTask is one in-flight pipeline run. Waiters block on done; the result
// fields are written exactly once before done is closed.
type dayTask struct {
	done   chan struct{}
	base   *entity.Article
	result *Result
	err    error
}

// Coordinator runs the per-day content pipeline. The in-flight registry keeps
// at most one live run per date: concurrent callers for the same date join
// the existing run instead of starting a duplicate.
type Coordinator struct {
	repo        repository.ArticleRepository
	generator   *generation.Service
	translator  *translation.Service
	retryConfig retry.Config

	mu       sync.Mutex
	inflight map[string]*dayTask
}

// NewCoordinator creates a Coordinator over the given services.
func NewCoordinator(repo repository.ArticleRepository, generator *generation.Service, translator *translation.Service) *Coordinator {
	return &Coordinator{
		repo:        repo,
		generator:   generator,
		translator:  translator,
		retryConfig: retry.CoordinatorConfig(),
		inflight:    make(map[string]*dayTask),
	}
}

// EnsureArticleForDate returns the base-language article for date, running the
// full content pipeline if needed. Concurrent calls for the same date join the
// same run instead of generating twice.
func (c *Coordinator) EnsureArticleForDate(ctx context.Context, date string) (*entity.Article, error) {
	t, err := c.ensure(ctx, date, Options{})
	if err != nil {
		return nil, err
	}
	return t.base, nil
}

// GenerateContentForDate runs the full pipeline for one day: base article
// first, then concurrent translation into every target language. Per-language
// failures are collected in the Result rather than aborting the run; only an
// invalid date or base generation failure returns an error.
func (c *Coordinator) GenerateContentForDate(ctx context.Context, date string, opts Options) (*Result, error) {
	t, err := c.ensure(ctx, date, opts)
	if err != nil {
		return nil, err
	}
	return t.result, nil
}

// ensure joins the in-flight run for date or registers a new one, then waits
// for settlement. A run belongs to whoever registered it first; a caller
// joining an existing run gets that run's options, not its own. The work is
// detached from the caller's context, so a caller that gives up waiting does
// not abort the run for the callers still attached.
func (c *Coordinator) ensure(ctx context.Context, date string, opts Options) (*dayTask, error) {
	if !entity.IsValidDate(date) {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidDate, date)
	}

	c.mu.Lock()
	if t, ok := c.inflight[date]; ok {
		c.mu.Unlock()
		metrics.RecordEnsureJoined()
		slog.InfoContext(ctx, "joining in-flight content run",
			slog.String("date", date))
		return c.await(ctx, t)
	}

	t := &dayTask{done: make(chan struct{})}
	c.inflight[date] = t
	c.mu.Unlock()

	go c.run(context.WithoutCancel(ctx), date, opts, t)

	return c.await(ctx, t)
}

// run executes one pipeline run with retries and settles the task. The task
// is unregistered before done is closed so late arrivals start a fresh run
// instead of observing a settled one.
func (c *Coordinator) run(ctx context.Context, date string, opts Options, t *dayTask) {
	err := retry.Do(ctx, c.retryConfig, func() error {
		result, base, runErr := c.runOnce(ctx, date, opts)
		if runErr != nil {
			return runErr
		}
		t.result = result
		t.base = base
		return nil
	})
	if err != nil {
		metrics.RecordDailyRun(false)
	}
	t.err = err

	c.mu.Lock()
	delete(c.inflight, date)
	c.mu.Unlock()

	close(t.done)
}

// await blocks until the task settles or the caller's context ends.
func (c *Coordinator) await(ctx context.Context, t *dayTask) (*dayTask, error) {
	select {
	case <-t.done:
		if t.err != nil {
			return nil, t.err
		}
		return t, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("abandoned wait for content run: %w", ctx.Err())
	}
}

// runOnce is a single attempt at the full pipeline for one day.
func (c *Coordinator) runOnce(ctx context.Context, date string, opts Options) (*Result, *entity.Article, error) {
	base, generated, err := c.prepareBase(ctx, date, opts)
	if err != nil {
		return nil, nil, err
	}

	result := &Result{
		Date:      date,
		Generated: generated,
		Failed:    make(map[entity.Language]error),
	}

	// A translations-only run with no stored base article has nothing to
	// translate from. The run settles cleanly instead of failing.
	if base == nil {
		slog.WarnContext(ctx, "translations-only run skipped, no base article",
			slog.String("date", date))
		metrics.RecordDailyRun(true)
		return result, nil, nil
	}

	c.fanOut(ctx, base, opts.Force, result)

	metrics.RecordDailyRun(result.Success())

	slog.InfoContext(ctx, "daily content run finished",
		slog.String("date", date),
		slog.Bool("generated", result.Generated),
		slog.Int("translated", len(result.Translated)),
		slog.Int("failed", len(result.Failed)))

	return result, base, nil
}

// prepareBase resolves the base-language article according to Options.
func (c *Coordinator) prepareBase(ctx context.Context, date string, opts Options) (*entity.Article, bool, error) {
	if opts.TranslationsOnly {
		base, err := c.repo.GetArticle(ctx, date, entity.BaseLanguage)
		if err != nil {
			return nil, false, fmt.Errorf("load base article: %w", err)
		}
		return base, false, nil
	}

	if opts.Force {
		base, err := c.generator.RegenerateArticle(ctx, date)
		if err != nil {
			return nil, false, fmt.Errorf("regenerate base article: %w", err)
		}
		return base, true, nil
	}

	if _, err := c.generator.GenerateArticle(ctx, date); err != nil {
		return nil, false, fmt.Errorf("generate base article: %w", err)
	}

	// Reload from storage; the persisted row is authoritative for the
	// translation fan-out. A miss here means storage dropped the article
	// between save and load, so generation runs again.
	base, err := c.repo.GetArticle(ctx, date, entity.BaseLanguage)
	if err != nil {
		return nil, false, fmt.Errorf("load base article: %w", err)
	}
	if base == nil {
		slog.WarnContext(ctx, "base article missing after generation, regenerating",
			slog.String("date", date))
		base, err = c.generator.RegenerateArticle(ctx, date)
		if err != nil {
			return nil, false, fmt.Errorf("regenerate missing base article: %w", err)
		}
	}
	return base, true, nil
}

// fanOut translates the base article into every target language concurrently.
// Each language settles independently; the only error that crosses language
// boundaries is context cancellation.
func (c *Coordinator) fanOut(ctx context.Context, base *entity.Article, force bool, result *Result) {
	sem := make(chan struct{}, translationParallelism)
	eg, egCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex

	for _, target := range entity.TranslationTargets() {
		lang := target

		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			var err error
			if force {
				_, err = c.translator.RetranslateArticle(egCtx, base, lang)
			} else {
				_, err = c.translator.TranslateArticle(egCtx, base, lang)
			}

			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}

				slog.WarnContext(egCtx, "translation failed, continuing with other languages",
					slog.String("date", base.Date),
					slog.String("language", string(lang)),
					slog.Any("error", err))

				mu.Lock()
				result.Failed[lang] = err
				mu.Unlock()
				return nil
			}

			mu.Lock()
			result.Translated = append(result.Translated, lang)
			mu.Unlock()
			return nil
		})
	}

	// Errors other than cancellation never escape the goroutines.
	if err := eg.Wait(); err != nil {
		slog.WarnContext(ctx, "translation fan-out aborted",
			slog.String("date", base.Date),
			slog.Any("error", err))
	}
}
