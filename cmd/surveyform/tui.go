package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-surveyform/pkg/renderers/tui"
	"github.com/goliatone/go-surveyform/pkg/survey"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Fill in the survey in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	fetcher, err := newFetcher(cfg.Questions)
	if err != nil {
		return err
	}

	ctrl := survey.NewController(cmd.Context(), fetcher,
		survey.WithLogger(logger.Named("survey")),
		survey.WithFetchTimeout(cfg.Questions.RequestTimeout),
	)
	defer ctrl.Close()

	runner, err := tui.NewRunner(ctrl, tui.WithOutput(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	if _, err := runner.Run(cmd.Context()); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		return err
	}
	return nil
}
