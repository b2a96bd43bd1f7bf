package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-surveyform/pkg/topic"
)

var questionsCmd = &cobra.Command{
	Use:   "questions <topic>",
	Short: "Fetch the follow-up questions of a topic",
	Long: `Fetch the follow-up questions of a topic from the configured question bank
and print them as JSON.

Examples:
  surveyform questions Health`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: topicNames(),
	RunE:      runQuestions,
}

func topicNames() []string {
	names := make([]string, 0, len(topic.All()))
	for _, t := range topic.All() {
		names = append(names, t.Name())
	}
	return names
}

func runQuestions(cmd *cobra.Command, args []string) error {
	selected, ok := topic.Parse(args[0])
	if !ok {
		return fmt.Errorf("unknown topic %q (want one of %s)", args[0], strings.Join(topicNames(), ", "))
	}

	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := newFetcher(cfg.Questions)
	if err != nil {
		return err
	}
	qs, err := client.Fetch(cmd.Context(), selected)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(qs)
}
