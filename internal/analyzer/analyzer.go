// Package analyzer orchestrates a full analysis run: batch fan-out
// over the creator list, per-creator enrichment and classification,
// progress reporting, and final aggregation.
package analyzer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brandlens/brandlens/internal/brand"
	"github.com/brandlens/brandlens/internal/classifier"
	"github.com/brandlens/brandlens/internal/identity"
	"github.com/brandlens/brandlens/internal/logger"
	"github.com/brandlens/brandlens/internal/metrics"
	"github.com/brandlens/brandlens/internal/models"
	"github.com/brandlens/brandlens/internal/report"
	"github.com/brandlens/brandlens/internal/taskstore"
)

// Enricher fetches external profile data for a handle. Both methods
// are fail-soft: they return defaults, never errors.
type Enricher interface {
	FetchProfile(ctx context.Context, handle string) models.ProfileSnapshot
	FetchRecentPosts(ctx context.Context, handle string) []models.RecentPost
}

// Classifier decides a creator's brand relationship.
type Classifier interface {
	Classify(ctx context.Context, req classifier.Request) models.ClassificationResult
}

// SkipList lets reruns skip creators a previous run already finished.
type SkipList interface {
	IsAnalyzed(handle string) bool
	MarkAnalyzed(handle string)
}

// ProgressFunc receives best-effort progress events.
type ProgressFunc func(models.ProgressEvent)

// Options tune the orchestrator.
type Options struct {
	BatchSize      int
	BatchPause     time.Duration
	MaxRunDuration time.Duration // 0 means no deadline
}

// Analyzer runs the full pipeline over a creator list.
type Analyzer struct {
	enricher   Enricher
	classifier Classifier
	store      taskstore.Store
	skipList   SkipList
	progress   ProgressFunc
	opts       Options
}

// New creates an analyzer. store, skipList and progress may be nil.
func New(enricher Enricher, cls Classifier, store taskstore.Store, skipList SkipList, progress ProgressFunc, opts Options) *Analyzer {
	if opts.BatchSize < 1 {
		opts.BatchSize = 5
	}
	return &Analyzer{
		enricher:   enricher,
		classifier: cls,
		store:      store,
		skipList:   skipList,
		progress:   progress,
		opts:       opts,
	}
}

// Run analyzes all creators found in rawRecords and returns the final
// report. A deadline or cancellation stops dispatching new batches and
// returns the partial results collected so far.
func (a *Analyzer) Run(ctx context.Context, rawRecords []map[string]any) (*models.FinalReport, error) {
	runID := uuid.New().String()
	startedAt := time.Now()

	var deadline time.Time
	if a.opts.MaxRunDuration > 0 {
		deadline = startedAt.Add(a.opts.MaxRunDuration)
	}

	identities := identity.Extract(rawRecords)
	if a.skipList != nil {
		identities = a.withoutAnalyzed(identities)
	}
	total := len(identities)

	logger.Info("Starting analysis run %s: %d creators, batch size %d", runID, total, a.opts.BatchSize)
	a.setState(runID, "running", 0, total, "starting")

	final := &models.FinalReport{
		RunID:     runID,
		StartedAt: startedAt,
		Creators:  make([]models.CreatorReport, 0, total),
	}

	for start := 0; start < total; start += a.opts.BatchSize {
		if err := ctx.Err(); err != nil {
			logger.Warn("Run %s cancelled after %d creators", runID, len(final.Creators))
			final.Partial = true
			break
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			logger.Warn("Run %s hit its deadline after %d creators, returning partial results", runID, len(final.Creators))
			final.Partial = true
			break
		}

		end := start + a.opts.BatchSize
		if end > total {
			end = total
		}
		batch := identities[start:end]

		// Fan out the batch, then merge sequentially once every task
		// has settled. A single creator's failure never aborts the
		// batch.
		results := make([]models.CreatorReport, len(batch))
		var wg sync.WaitGroup
		for i, id := range batch {
			wg.Add(1)
			go func(i int, id models.CreatorIdentity) {
				defer wg.Done()
				results[i] = a.processCreator(ctx, id)
			}(i, id)
		}
		wg.Wait()

		for _, r := range results {
			final.Creators = append(final.Creators, r)
			if a.skipList != nil && !r.Failed {
				a.skipList.MarkAnalyzed(r.Identity.Handle)
			}
			processed := len(final.Creators)
			a.setState(runID, "running", processed, total, "processed "+r.Identity.Handle)
			a.emit(models.ProgressEvent{
				Processed: processed,
				Total:     total,
				Message:   fmt.Sprintf("Processed %s (%d/%d)", r.Identity.Handle, processed, total),
			})
		}

		if end < total && a.opts.BatchPause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(a.opts.BatchPause):
			}
		}
	}

	final.FinishedAt = time.Now()
	final.Aggregate = report.Aggregate(final.Creators)

	status := "done"
	if final.Partial {
		status = "partial"
	}
	a.setState(runID, status, len(final.Creators), total, "finished")

	logger.Info("Run %s finished: %d/%d creators, %d brand related, %d failed",
		runID, len(final.Creators), total, final.Aggregate.BrandRelated, final.Aggregate.FailedCount)
	return final, nil
}

// processCreator runs the per-creator unit of work. It never panics
// out; a recovered panic yields a failed entry.
func (a *Analyzer) processCreator(ctx context.Context, id models.CreatorIdentity) (report models.CreatorReport) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while processing %s: %v", id.Handle, r)
			report = failedReport(id, fmt.Sprintf("panic: %v", r))
		}
	}()

	if err := id.Validate(); err != nil {
		return failedReport(id, fmt.Sprintf("invalid identity: %v", err))
	}

	profile := a.enricher.FetchProfile(ctx, id.Handle)
	posts := a.enricher.FetchRecentPosts(ctx, id.Handle)
	videoMetrics := metrics.Compute(posts)

	signature := profile.Signature
	if signature == "" {
		signature = id.RawSignature
	}

	mentions := brand.MentionsFromTitles(posts)
	classification := a.classifier.Classify(ctx, classifier.Request{
		Handle:      id.Handle,
		DisplayName: id.DisplayName,
		Signature:   signature,
		Context:     classifyContext(id, mentions),
		Mentions:    mentions,
		Profile:     profile,
	})

	return models.CreatorReport{
		Identity:       id,
		Profile:        profile,
		Metrics:        videoMetrics,
		Classification: classification,
		Email:          brand.ExtractEmail(signature),
		ProfileURL:     "https://www.tiktok.com/@" + id.Handle,
		FirstSeenDate:  humanizeDate(id.SourceCreateTime),
		IsBrandRelated: classification.BrandRelated(),
	}
}

// classifyContext summarizes content signals for the AI prompt: the
// source video title plus sponsor mentions found in recent posts.
func classifyContext(id models.CreatorIdentity, mentions []string) string {
	parts := make([]string, 0, 2)
	if id.SourceTitle != "" {
		parts = append(parts, "Video title: "+id.SourceTitle)
	}
	if len(mentions) > 0 {
		parts = append(parts, "Brand mentions in recent posts: "+strings.Join(mentions, ", "))
	}
	return strings.Join(parts, ". ")
}

func failedReport(id models.CreatorIdentity, reason string) models.CreatorReport {
	return models.CreatorReport{
		Identity: id,
		Classification: models.ClassificationResult{
			AccountType: models.AccountNonBranded,
			Rationale:   "Skipped: " + reason,
		},
		Failed:        true,
		FailureReason: reason,
	}
}

func (a *Analyzer) withoutAnalyzed(identities []models.CreatorIdentity) []models.CreatorIdentity {
	kept := identities[:0]
	skipped := 0
	for _, id := range identities {
		if a.skipList.IsAnalyzed(id.Handle) {
			skipped++
			continue
		}
		kept = append(kept, id)
	}
	if skipped > 0 {
		logger.Info("Skipping %d already analyzed creators", skipped)
	}
	return kept
}

func (a *Analyzer) setState(runID, status string, processed, total int, message string) {
	if a.store == nil {
		return
	}
	a.store.Set(runID, taskstore.TaskState{
		RunID:     runID,
		Status:    status,
		Processed: processed,
		Total:     total,
		Message:   message,
	})
}

func (a *Analyzer) emit(event models.ProgressEvent) {
	if a.progress == nil {
		return
	}
	a.progress(event)
}

// humanizeDate renders a raw unix create-time value as YYYY-MM-DD.
// Anything that is not a positive integer yields "".
func humanizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if ts, err := strconv.ParseInt(raw, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC().Format("2006-01-02")
	}
	return ""
}
