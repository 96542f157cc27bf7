package config

import (
	"context"
	"log/slog"
)

// Log logs the resolved settings in a granular way, masking credentials
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: transport", "value", s.Transport)
	if s.Transport == "sse" {
		logger.InfoContext(ctx, "Config: host", "value", s.Host)
		logger.InfoContext(ctx, "Config: port", "value", s.Port)
	}

	logger.InfoContext(ctx, "Config: auth.type", "value", s.Auth.Type)
	switch s.Auth.Type {
	case AuthTypeBasic:
		logger.InfoContext(ctx, "Config: auth.basic.username", "value", s.Auth.Basic.Username)
		logger.InfoContext(ctx, "Config: auth.basic.password", "value", "****")
	case AuthTypeAPIKey:
		logger.InfoContext(ctx, "Config: auth.api_keys", "count", len(s.Auth.APIKeys))
	}

	logger.InfoContext(ctx, "Config: google search", "configured", s.Google.Configured())
	if s.Google.Configured() {
		logger.InfoContext(ctx, "Config: google.engine_id", "value", s.Google.EngineID)
		logger.InfoContext(ctx, "Config: google.api_key", "value", "****")
	}

	logger.InfoContext(ctx, "Config: stackexchange.site", "value", s.StackExchange.Site)
	logger.InfoContext(ctx, "Config: stackexchange.filter", "value", s.StackExchange.Filter)

	logger.InfoContext(ctx, "Config: reddit", "configured", s.Reddit.Configured())
	if s.Reddit.Configured() {
		logger.InfoContext(ctx, "Config: reddit.username", "value", s.Reddit.Username)
		logger.InfoContext(ctx, "Config: reddit.client_id", "value", "****")
		logger.InfoContext(ctx, "Config: reddit.max_depth", "value", s.Reddit.MaxDepth)
		logger.InfoContext(ctx, "Config: reddit.max_comments", "value", s.Reddit.MaxComments)
	}

	if s.Docs.MirrorDir != "" {
		logger.InfoContext(ctx, "Config: docs.mirror_dir", "value", s.Docs.MirrorDir)
		logger.InfoContext(ctx, "Config: docs.host", "value", s.Docs.Host)
		logger.InfoContext(ctx, "Config: docs.index", "value", s.Docs.Index)
		if s.Docs.SyncURL != "" {
			logger.InfoContext(ctx, "Config: docs.sync_url", "value", s.Docs.SyncURL)
		}
	}

	if s.Scrape.Endpoint != "" {
		logger.InfoContext(ctx, "Config: scrape.endpoint", "value", s.Scrape.Endpoint)
		logger.InfoContext(ctx, "Config: scrape.timeout", "value", s.Scrape.Timeout)
	}
}

// GoogleSettingsLogValue returns a slog.Value for GoogleSettings with masked data
func GoogleSettingsLogValue(s GoogleSettings) slog.Value {
	return slog.GroupValue(
		slog.String("engine_id", s.EngineID),
		slog.String("api_key", "****"),
	)
}

// RedditSettingsLogValue returns a slog.Value for RedditSettings with masked data
func RedditSettingsLogValue(s RedditSettings) slog.Value {
	return slog.GroupValue(
		slog.String("username", s.Username),
		slog.String("client_id", "****"),
		slog.String("client_secret", "****"),
		slog.String("password", "****"),
		slog.Int("max_depth", s.MaxDepth),
		slog.Int("max_comments", s.MaxComments),
	)
}

// AuthSettingsLogValue returns a slog.Value for AuthSettings with masked data
func AuthSettingsLogValue(s AuthSettings) slog.Value {
	keys := make([]string, len(s.APIKeys))
	for i := range s.APIKeys {
		keys[i] = "****"
	}
	return slog.GroupValue(
		slog.String("type", s.Type),
		slog.Any("basic", slog.GroupValue(
			slog.String("username", s.Basic.Username),
			slog.String("password", "****"),
		)),
		slog.Any("api_keys", keys),
	)
}
