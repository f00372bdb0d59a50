package ratelimit

import (
	"path"
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Patterns match exactly, by path.Match wildcard ("/sessions/*/tasks/fill"), or by
// prefix when they end in "/".
func MatchEndpoint(reqPath string, method string, configs []EndpointConfig) *EndpointConfig {
	// Special case: health check endpoint is unlimited
	if reqPath == "/health" && method == "GET" {
		return &EndpointConfig{Path: reqPath}
	}

	// Try exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == reqPath && config.Method == method {
			return config
		}
	}

	// Then wildcard patterns
	for i := range configs {
		config := &configs[i]
		if config.Method != method || !strings.Contains(config.Path, "*") {
			continue
		}
		if ok, err := path.Match(config.Path, reqPath); err == nil && ok {
			return config
		}
	}

	// Try prefix match (for paths ending with "/")
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(reqPath, config.Path) {
				return config
			}
		}
	}

	// No match found
	return nil
}
