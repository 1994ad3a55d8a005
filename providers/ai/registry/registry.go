// Package registry selects a provider adapter by name.
//
//	adapter, err := registry.New(registry.Config{Provider: "cohere", Model: "command-r"})
package registry

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/leofalp/llmadapt/providers/ai"
	"github.com/leofalp/llmadapt/providers/ai/ai21"
	"github.com/leofalp/llmadapt/providers/ai/cohere"
	"github.com/leofalp/llmadapt/providers/ai/shuttleai"
)

// Config selects and configures an adapter. Empty fields keep the adapter's
// own defaults, which read <PROVIDER>_API_KEY and <PROVIDER>_API_BASE_URL.
type Config struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

type factory func(Config) ai.Adapter

var factories = map[string]factory{
	"ai21": func(c Config) ai.Adapter {
		p := ai21.New()
		if c.APIKey != "" {
			p.WithAPIKey(c.APIKey)
		}
		if c.Model != "" {
			p.WithModel(c.Model)
		}
		if c.BaseURL != "" {
			p.WithBaseURL(c.BaseURL)
		}
		if c.HTTPClient != nil {
			p.WithHttpClient(c.HTTPClient)
		}
		return p
	},
	"cohere": func(c Config) ai.Adapter {
		p := cohere.New()
		if c.APIKey != "" {
			p.WithAPIKey(c.APIKey)
		}
		if c.Model != "" {
			p.WithModel(c.Model)
		}
		if c.BaseURL != "" {
			p.WithBaseURL(c.BaseURL)
		}
		if c.HTTPClient != nil {
			p.WithHttpClient(c.HTTPClient)
		}
		return p
	},
	"shuttleai": func(c Config) ai.Adapter {
		p := shuttleai.New()
		if c.APIKey != "" {
			p.WithAPIKey(c.APIKey)
		}
		if c.Model != "" {
			p.WithModel(c.Model)
		}
		if c.BaseURL != "" {
			p.WithBaseURL(c.BaseURL)
		}
		if c.HTTPClient != nil {
			p.WithHttpClient(c.HTTPClient)
		}
		return p
	},
}

// New builds the adapter named by cfg.Provider (case-insensitive).
func New(cfg Config) (ai.Adapter, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	build, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (supported: %s)", cfg.Provider, strings.Join(Names(), ", "))
	}
	return build(cfg), nil
}

// Names lists the supported provider names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
