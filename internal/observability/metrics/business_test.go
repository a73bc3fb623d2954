package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordArticleGenerated(t *testing.T) {
	before := testutil.ToFloat64(ArticlesGeneratedTotal.WithLabelValues("success"))
	RecordArticleGenerated(true)
	after := testutil.ToFloat64(ArticlesGeneratedTotal.WithLabelValues("success"))

	if after != before+1 {
		t.Errorf("expected success counter to increment by 1, got %v -> %v", before, after)
	}

	beforeFail := testutil.ToFloat64(ArticlesGeneratedTotal.WithLabelValues("failure"))
	RecordArticleGenerated(false)
	afterFail := testutil.ToFloat64(ArticlesGeneratedTotal.WithLabelValues("failure"))

	if afterFail != beforeFail+1 {
		t.Errorf("expected failure counter to increment by 1, got %v -> %v", beforeFail, afterFail)
	}
}

func TestRecordTranslation_Labels(t *testing.T) {
	RecordTranslation("ja", "deepl", true)
	RecordTranslation("ja", "openai", false)

	if got := testutil.ToFloat64(TranslationsTotal.WithLabelValues("ja", "deepl", "success")); got < 1 {
		t.Errorf("expected deepl/success counter >= 1, got %v", got)
	}
	if got := testutil.ToFloat64(TranslationsTotal.WithLabelValues("ja", "openai", "failure")); got < 1 {
		t.Errorf("expected openai/failure counter >= 1, got %v", got)
	}
}

func TestUpdateQuotaRemaining(t *testing.T) {
	UpdateQuotaRemaining("deepl", 424242)

	if got := testutil.ToFloat64(TranslationQuotaRemaining.WithLabelValues("deepl")); got != 424242 {
		t.Errorf("expected quota gauge 424242, got %v", got)
	}
}

func TestRecordTranslationDuration_Gathered(t *testing.T) {
	RecordTranslationDuration("deepl", 2*time.Second)

	// Inspect gathered families directly to confirm the histogram is
	// registered with the default registry under the expected name.
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var family *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "article_translation_duration_seconds" {
			family = f
			break
		}
	}
	if family == nil {
		t.Fatal("article_translation_duration_seconds not found in gathered metrics")
	}
	if family.GetType() != dto.MetricType_HISTOGRAM {
		t.Errorf("expected histogram, got %v", family.GetType())
	}

	found := false
	for _, m := range family.GetMetric() {
		for _, label := range m.GetLabel() {
			if label.GetName() == "provider" && label.GetValue() == "deepl" {
				found = true
				if m.GetHistogram().GetSampleCount() == 0 {
					t.Error("expected at least one histogram observation for provider=deepl")
				}
			}
		}
	}
	if !found {
		t.Error("no histogram series with provider=deepl")
	}
}

func TestRecordDailyRun(t *testing.T) {
	before := testutil.ToFloat64(DailyRunsTotal.WithLabelValues("failure"))
	RecordDailyRun(false)
	after := testutil.ToFloat64(DailyRunsTotal.WithLabelValues("failure"))

	if after != before+1 {
		t.Errorf("expected failure counter to increment, got %v -> %v", before, after)
	}
}
