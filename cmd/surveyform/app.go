package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/internal/config"
	"github.com/goliatone/go-surveyform/internal/logging"
	"github.com/goliatone/go-surveyform/pkg/questions"
)

// bootstrap loads .env files and configuration and builds the logger.
func bootstrap() (config.Config, *zap.Logger, error) {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func newFetcher(cfg config.QuestionsConfig) (*questions.Client, error) {
	client, err := questions.NewClient(
		questions.WithEndpoint(cfg.Endpoint),
		questions.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("question client: %w", err)
	}
	return client, nil
}
