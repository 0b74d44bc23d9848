// Package classifier decides how a creator relates to brands: the
// primary path asks an AI text-completion dependency, the fallback is
// a deterministic rule ladder.
package classifier

import (
	"context"
	"strings"
	"time"

	"github.com/brandlens/brandlens/internal/brand"
	"github.com/brandlens/brandlens/internal/logger"
	"github.com/brandlens/brandlens/internal/models"
	"github.com/brandlens/brandlens/internal/retry"
)

// Completer is the AI text-completion dependency.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Request carries everything known about a creator at classification
// time.
type Request struct {
	Handle      string
	DisplayName string
	Signature   string
	Context     string
	Mentions    []string // Sponsor mentions found in recent post titles
	Profile     models.ProfileSnapshot
}

// Classifier runs the two-tier classification flow.
type Classifier struct {
	completer Completer
	pacer     *pacer
	policy    retry.Policy
}

// Options tune the classifier's throttling and retry behavior.
type Options struct {
	MaxRetries      int
	BackoffBase     time.Duration
	BackoffCap      time.Duration
	MinCallInterval time.Duration
	CooldownEvery   int
	Cooldown        time.Duration
}

// New creates a classifier. A nil completer skips the AI tier and goes
// straight to rules.
func New(completer Completer, opts Options) *Classifier {
	return &Classifier{
		completer: completer,
		pacer:     newPacer(opts.MinCallInterval, opts.CooldownEvery, opts.Cooldown),
		policy: retry.Policy{
			MaxAttempts: opts.MaxRetries,
			BaseDelay:   opts.BackoffBase,
			Multiplier:  2,
			Jitter:      1500 * time.Millisecond,
			Cap:         opts.BackoffCap,
		},
	}
}

// Classify produces a final, brand-filtered classification for one
// creator. It never returns an error: AI failures degrade to the rule
// fallback.
func (c *Classifier) Classify(ctx context.Context, req Request) models.ClassificationResult {
	signature := req.Signature
	if signature == "" {
		signature = req.Profile.Signature
	}

	result, ok := c.classifyAI(ctx, req, signature)
	if !ok {
		result = RuleClassify(signature, req.DisplayName, req.Handle)
	}
	return finalize(result, req.Mentions)
}

// classifyAI runs the AI tier. The second return is false when the
// dependency is unavailable and the rule fallback should run instead.
// A malformed response is a defined degraded outcome, not a fallback
// trigger, so it returns true.
func (c *Classifier) classifyAI(ctx context.Context, req Request, signature string) (models.ClassificationResult, bool) {
	if c.completer == nil {
		return models.ClassificationResult{}, false
	}

	prompt := buildPrompt(signature, req.DisplayName, req.Handle, req.Context, looksOfficial(req.Handle, req.DisplayName, signature))

	var text string
	err := c.policy.Do(ctx, func() error {
		if err := c.pacer.Wait(ctx); err != nil {
			return err
		}
		var err error
		text, err = c.completer.Complete(ctx, prompt)
		return err
	})
	if err != nil {
		logger.Warn("AI classification for %s failed after retries, using rule fallback: %v", req.Handle, err)
		return models.ClassificationResult{}, false
	}

	result := parseResponse(text)
	if result.Confidence == 0 && result.AccountType == models.AccountUGC {
		logger.Warn("Untrusted AI response for %s: %s", req.Handle, result.Rationale)
	}
	return result, true
}

// finalize applies the brand-name filter and the account-type mapping:
// a UGC result keeps its type only when a validated brand survives
// filtering, otherwise it becomes non-branded. For UGC results, sponsor
// mentions found in recent post titles take precedence over whatever
// brand name the classification extracted.
func finalize(result models.ClassificationResult, mentions []string) models.ClassificationResult {
	if result.AccountType == models.AccountUGC && len(mentions) > 0 {
		result.BrandName = strings.Join(mentions, ", ")
	}
	result.BrandName = brand.FilterName(result.BrandName, result.AccountType, result.Rationale)
	if result.AccountType == models.AccountUGC && result.BrandName == "" {
		result.AccountType = models.AccountNonBranded
	}
	return result
}
