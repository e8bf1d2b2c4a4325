package catalog

import (
	"github.com/jeanpaul/shelf/internal/config"
)

// NewSource builds the configured catalog. Files win over the endpoint so a
// config can point at a local copy without clearing the default URL.
func NewSource(cfg config.CatalogConfig) (Source, error) {
	if cfg.Files != "" {
		fs, err := NewFileSource(cfg.Files)
		if err != nil {
			return nil, err
		}
		return fs, nil
	}

	opts := []ClientOption{WithTimeout(cfg.Timeout)}
	for k, v := range cfg.Headers {
		opts = append(opts, WithHeader(k, v))
	}
	client, err := NewGraphQLClient(cfg.Endpoint, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.MaxRetries > 0 {
		return WithRetry(client, cfg.MaxRetries), nil
	}
	return client, nil
}
