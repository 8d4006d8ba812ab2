// Package suggest asks a language model for a one-line disposition
// suggestion per vulnerability finding.
//
// Suggestions feed the interactive prompt as a pre-filled ignore reason;
// they are advisory only and the user always decides. Responses are cached
// on disk so re-running the tool over the same report asks nothing twice.
package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/cache"
	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/scanner"
)

// DefaultTTL is how long cached suggestions stay valid. Advisories change
// rarely; a month keeps repeated runs cheap without growing stale forever.
const DefaultTTL = 30 * 24 * time.Hour

const systemPrompt = `You help JavaScript maintainers triage osv-scanner findings.
Given a vulnerability and the dependency chain that pulls the affected package in,
reply with a single short sentence suitable as the "reason" field of an
osv-scanner.toml ignore entry. Mention whether the package looks like a build-time
or runtime dependency based on the chain. Reply with the sentence only.`

// Suggester produces an ignore-reason suggestion for a finding.
type Suggester interface {
	Suggest(ctx context.Context, f scanner.Finding, chain string) (string, error)
}

// LLMSuggester asks the Anthropic API, with caching and retry.
type LLMSuggester struct {
	client *Client
	cache  cache.Cache
	ttl    time.Duration
}

// NewLLMSuggester wires a client with a cache. A nil cache disables
// caching.
func NewLLMSuggester(client *Client, c cache.Cache) *LLMSuggester {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &LLMSuggester{client: client, cache: c, ttl: DefaultTTL}
}

// Suggest returns a one-line reason for ignoring (or acting on) f. The
// cache key covers the advisory, the package version and the chain, so a
// changed chain invalidates the cached answer.
func (s *LLMSuggester) Suggest(ctx context.Context, f scanner.Finding, chain string) (string, error) {
	key := cacheKey(f, chain)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		return string(data), nil
	}

	var out string
	err := cache.RetryWithBackoff(ctx, func() error {
		text, err := s.client.Complete(ctx, systemPrompt, userPrompt(f, chain), 200)
		if err != nil {
			return err
		}
		out = strings.TrimSpace(text)
		return nil
	})
	if err != nil {
		return "", err
	}

	_ = s.cache.Set(ctx, key, []byte(out), s.ttl)
	return out, nil
}

func cacheKey(f scanner.Finding, chain string) string {
	return "suggestion:" + cache.Hash([]byte(f.ID+"|"+f.Package+"|"+f.Version+"|"+chain))
}

func userPrompt(f scanner.Finding, chain string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vulnerability: %s\n", f.ID)
	if len(f.Aliases) > 0 {
		fmt.Fprintf(&b, "Aliases: %s\n", strings.Join(f.Aliases, ", "))
	}
	if f.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", f.Summary)
	}
	fmt.Fprintf(&b, "Package: %s@%s (%s)\n", f.Package, f.Version, f.Ecosystem)
	if f.Severity != "" {
		fmt.Fprintf(&b, "Severity: %s\n", f.Severity)
	}
	fmt.Fprintf(&b, "Dependency chain: %s\n", chain)
	return b.String()
}
