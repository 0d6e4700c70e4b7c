package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awses "github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"es-update-notifier/handler"
	"es-update-notifier/internal/domain"
	"es-update-notifier/internal/integrations/account"
	"es-update-notifier/internal/integrations/paramstore"
	"es-update-notifier/internal/integrations/searchservice"
	"es-update-notifier/internal/integrations/slack"
	"es-update-notifier/internal/usecase"
)

func main() {
	ctx := context.Background()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(os.Getenv("LOG_LEVEL"))}))
	slog.SetDefault(logger)

	// ---- Configuration (read only here) ----
	tokenPath := mustEnv("SLACK_TOKEN_SSM_PATH")
	channel := mustEnv("SLACK_CHANNEL")
	releaseNotesURL := envOr("RELEASE_NOTES_URL", domain.DefaultReleaseNotesURL)

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}
	accountClient, err := account.New(awsiam.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create IAM client", "err", err)
		os.Exit(1)
	}
	searchClient, err := searchservice.New(awses.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create search service client", "err", err)
		os.Exit(1)
	}
	newNotifier := func(token string) (usecase.Notifier, error) {
		c, err := slack.New(token)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	// ---- Handler ----
	checkService, err := usecase.NewCheckService(searchClient, searchClient, accountClient, ssmClient, newNotifier, usecase.Config{
		TokenParameter:  tokenPath,
		Channel:         channel,
		Region:          cfg.Region,
		ReleaseNotesURL: releaseNotesURL,
	}, logger)
	if err != nil {
		slog.Error("failed to create check service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(checkService, logger)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func logLevel(v string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
