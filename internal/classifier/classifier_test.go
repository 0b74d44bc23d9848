package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brandlens/brandlens/internal/models"
)

type fakeCompleter struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func testOptions() Options {
	return Options{
		MaxRetries:      3,
		BackoffBase:     time.Millisecond,
		BackoffCap:      5 * time.Millisecond,
		MinCallInterval: 0,
		CooldownEvery:   50,
		Cooldown:        time.Millisecond,
	}
}

func TestClassifyAISuccess(t *testing.T) {
	fake := &fakeCompleter{responses: []string{"True|False|False|Nike|0.95|Username exactly matches major brand"}}
	c := New(fake, testOptions())

	got := c.Classify(context.Background(), Request{Handle: "nike", Signature: "Just Do It"})

	if got.AccountType != models.AccountOfficial {
		t.Errorf("Unexpected account type: %s", got.AccountType)
	}
	if got.BrandName != "Nike" {
		t.Errorf("Unexpected brand: %s", got.BrandName)
	}
	if got.Confidence != 0.95 {
		t.Errorf("Unexpected confidence: %v", got.Confidence)
	}
	if fake.calls != 1 {
		t.Errorf("Expected 1 AI call, got %d", fake.calls)
	}
}

func TestClassifyMalformedResponseDegrades(t *testing.T) {
	// 5 fields, not 6. Must degrade, not fall back to rules and not
	// retry.
	fake := &fakeCompleter{responses: []string{"True|False|False|Nike|0.95"}}
	c := New(fake, testOptions())

	got := c.Classify(context.Background(), Request{Handle: "nike"})

	if got.AccountType != models.AccountNonBranded {
		t.Errorf("Unexpected account type: %s", got.AccountType)
	}
	if got.BrandName != "" {
		t.Errorf("Expected empty brand, got %q", got.BrandName)
	}
	if got.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %v", got.Confidence)
	}
	if fake.calls != 1 {
		t.Errorf("Malformed response must not retry, got %d calls", fake.calls)
	}
}

func TestClassifyExclusivityViolationDegrades(t *testing.T) {
	tests := []string{
		"True|True|False|Nike|0.95|two categories",
		"False|False|False|None|0.9|no categories",
	}
	for _, resp := range tests {
		fake := &fakeCompleter{responses: []string{resp}}
		c := New(fake, testOptions())
		got := c.Classify(context.Background(), Request{Handle: "someone"})
		if got.AccountType != models.AccountNonBranded || got.BrandName != "" || got.Confidence != 0 {
			t.Errorf("Response %q: expected degraded default, got %+v", resp, got)
		}
	}
}

func TestClassifyTransportFailureFallsBack(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("429 RESOURCE_EXHAUSTED")}
	c := New(fake, testOptions())

	got := c.Classify(context.Background(), Request{
		Handle:    "oldspice.ph",
		Signature: "The official Old Spice account",
	})

	if fake.calls != 3 {
		t.Errorf("Expected 3 attempts before fallback, got %d", fake.calls)
	}
	if got.AccountType != models.AccountOfficial {
		t.Errorf("Unexpected account type: %s", got.AccountType)
	}
	if got.BrandName != "Old Spice" {
		t.Errorf("Unexpected brand: %s", got.BrandName)
	}
	if got.Confidence < 0.9 {
		t.Errorf("Expected confidence >= 0.9, got %v", got.Confidence)
	}
}

func TestClassifyNilCompleterUsesRules(t *testing.T) {
	c := New(nil, testOptions())
	got := c.Classify(context.Background(), Request{
		Handle:    "bobsbarbershop",
		Signature: "Bob Barber Shop Location: New Cairo",
	})
	if got.AccountType != models.AccountMatrix {
		t.Errorf("Unexpected account type: %s", got.AccountType)
	}
	if !strings.Contains(got.BrandName, "Bob Barber Shop") {
		t.Errorf("Expected brand containing Bob Barber Shop, got %q", got.BrandName)
	}
}

func TestClassifyUsesProfileSignatureWhenRawMissing(t *testing.T) {
	c := New(nil, testOptions())
	got := c.Classify(context.Background(), Request{
		Handle: "somecreator",
		Profile: models.ProfileSnapshot{
			Signature: "Fade Masters barber shop, booking: call 555, Location: downtown",
		},
	})
	if got.AccountType != models.AccountMatrix {
		t.Errorf("Unexpected account type: %s", got.AccountType)
	}
}

func TestClassifyUGCWithoutBrandBecomesNonBranded(t *testing.T) {
	fake := &fakeCompleter{responses: []string{"False|False|True|None|0.9|General reviewer with no partnership signals"}}
	c := New(fake, testOptions())

	got := c.Classify(context.Background(), Request{Handle: "randomcreator123"})
	if got.AccountType != models.AccountNonBranded {
		t.Errorf("Unexpected account type: %s", got.AccountType)
	}
	if got.BrandName != "" {
		t.Errorf("Expected empty brand, got %q", got.BrandName)
	}
}

func TestClassifyUGCBrandFiltered(t *testing.T) {
	// Unknown brand names from UGC responses are filtered away, which
	// demotes the result to non-branded.
	fake := &fakeCompleter{responses: []string{"False|False|True|Randomword|0.8|partnered content with codes"}}
	c := New(fake, testOptions())

	got := c.Classify(context.Background(), Request{Handle: "someone"})
	if got.AccountType != models.AccountNonBranded || got.BrandName != "" {
		t.Errorf("Expected filtered non-branded result, got %+v", got)
	}
}

func TestClassifyUGCKnownBrandKept(t *testing.T) {
	fake := &fakeCompleter{responses: []string{"False|False|True|Nike|0.8|Profile shows #nikeambassador and discount codes"}}
	c := New(fake, testOptions())

	got := c.Classify(context.Background(), Request{Handle: "sneakerfan"})
	if got.AccountType != models.AccountUGC {
		t.Errorf("Unexpected account type: %s", got.AccountType)
	}
	if got.BrandName != "Nike" {
		t.Errorf("Unexpected brand: %s", got.BrandName)
	}
}

func TestClassifyUGCMentionsOverrideBrand(t *testing.T) {
	// Sponsor mentions from recent post titles replace the AI-extracted
	// brand name for UGC creators before filtering.
	fake := &fakeCompleter{responses: []string{"False|False|True|Randomword|0.8|partnered content with codes"}}
	c := New(fake, testOptions())

	got := c.Classify(context.Background(), Request{Handle: "sneakerfan", Mentions: []string{"Nike"}})
	if got.AccountType != models.AccountUGC {
		t.Errorf("Unexpected account type: %s", got.AccountType)
	}
	if got.BrandName != "Nike" {
		t.Errorf("Unexpected brand: %s", got.BrandName)
	}
}

func TestClassifyRuleFallbackUGCMentions(t *testing.T) {
	// The rule ladder leaves UGC results without a brand name; mentions
	// from recent posts fill it in.
	c := New(nil, testOptions())

	got := c.Classify(context.Background(), Request{
		Handle:    "sneakerfan",
		Signature: "Sneaker reviews #ad #sponsored, discount code SNEAK10",
		Mentions:  []string{"Nike"},
	})
	if got.AccountType != models.AccountUGC {
		t.Errorf("Unexpected account type: %s", got.AccountType)
	}
	if got.BrandName != "Nike" {
		t.Errorf("Unexpected brand: %s", got.BrandName)
	}
}

func TestClassifyMentionsDoNotOverrideOfficial(t *testing.T) {
	fake := &fakeCompleter{responses: []string{"True|False|False|Nike|0.95|Username exactly matches major brand"}}
	c := New(fake, testOptions())

	got := c.Classify(context.Background(), Request{Handle: "nike", Mentions: []string{"Sephora"}})
	if got.AccountType != models.AccountOfficial {
		t.Errorf("Unexpected account type: %s", got.AccountType)
	}
	if got.BrandName != "Nike" {
		t.Errorf("Official brand must not be overridden by mentions, got %q", got.BrandName)
	}
}

func TestClassifyExclusivityProperty(t *testing.T) {
	responses := []string{
		"True|False|False|Nike|0.9|official",
		"False|True|False|Bob Barber Shop|0.9|local business",
		"False|False|True|Sephora|0.8|#ad partner",
		"False|False|True|None|0.9|regular user",
		"garbage",
		"True|True|True|Nike|0.9|broken",
	}
	for _, resp := range responses {
		fake := &fakeCompleter{responses: []string{resp}}
		c := New(fake, testOptions())
		got := c.Classify(context.Background(), Request{Handle: "anyone"})
		if !got.AccountType.Valid() {
			t.Errorf("Response %q produced invalid type %q", resp, got.AccountType)
		}
		if err := got.Validate(); err != nil {
			t.Errorf("Response %q produced invalid result: %v", resp, err)
		}
	}
}
