package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-story/internal/engine/graph"
	"github.com/KirkDiggler/rpg-story/internal/engine/playback"
	"github.com/KirkDiggler/rpg-story/internal/engine/rules"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/tui"
)

var (
	startScene  string
	runs        int
	maxSteps    int
	maxRevivals int
	payPrices   bool
	strict      bool
)

var graphCmd = &cobra.Command{
	Use:   "graph <story-file>",
	Short: "Print the scene graph of a story file as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadStoryFile(args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), graph.Derive(s))
	},
}

var lintCmd = &cobra.Command{
	Use:   "lint <story-file>",
	Short: "Report authoring warnings for a story file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadStoryFile(args[0])
		if err != nil {
			return err
		}
		warnings := rules.Lint(s)
		out := cmd.OutOrStdout()
		for _, w := range warnings {
			location := w.SceneID
			if w.ElementID != "" {
				location += "/" + w.ElementID
			}
			_, _ = fmt.Fprintf(out, "%-22s %-24s %s\n", w.Code, location, w.Message)
		}
		if len(warnings) == 0 {
			_, _ = fmt.Fprintln(out, "no warnings")
			return nil
		}
		if strict {
			return fmt.Errorf("%d warning(s)", len(warnings))
		}
		return nil
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <story-file>",
	Short: "Run random playthroughs of a story file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadStoryFile(args[0])
		if err != nil {
			return err
		}
		if runs < 1 {
			return fmt.Errorf("--runs must be at least 1")
		}

		endings := make(map[playback.Ending]int)
		truncated := 0
		out := cmd.OutOrStdout()
		for i := 0; i < runs; i++ {
			trace, err := playback.Simulate(s, playback.SimulateConfig{
				StartSceneID: startScene,
				MaxSteps:     maxSteps,
				MaxRevivals:  maxRevivals,
				PayPrices:    payPrices,
			})
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			if trace.Truncated {
				truncated++
			}
			endings[trace.Ending]++
			_, _ = fmt.Fprintf(out, "run %d: %s [%s]\n", i+1, strings.Join(trace.Scenes, " > "), endingLabel(trace))
		}

		_, _ = fmt.Fprintf(out, "\n%d run(s), %d truncated\n", runs, truncated)
		for ending, n := range endings {
			label := string(ending)
			if label == "" {
				label = "none"
			}
			_, _ = fmt.Fprintf(out, "  %-16s %d\n", label, n)
		}
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play <story-file>",
	Short: "Play a story file in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		s, err := loadStoryFile(args[0])
		if err != nil {
			return err
		}
		p, err := playback.New(s, startScene)
		if err != nil {
			return err
		}
		return tui.Run(p)
	},
}

func init() {
	lintCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any warning is reported")

	simulateCmd.Flags().StringVar(&startScene, "start", "", "scene to start from (default the start scene)")
	simulateCmd.Flags().IntVar(&runs, "runs", 10, "number of playthroughs")
	simulateCmd.Flags().IntVar(&maxSteps, "max-steps", playback.DefaultMaxSteps, "step limit per playthrough")
	simulateCmd.Flags().IntVar(&maxRevivals, "max-revivals", playback.DefaultMaxRevivals, "revivals allowed per playthrough")
	simulateCmd.Flags().BoolVar(&payPrices, "pay-prices", false, "treat priced options as paid for")

	playCmd.Flags().StringVar(&startScene, "start", "", "scene to start from (default the start scene)")
}

func endingLabel(t *playback.Trace) string {
	switch {
	case t.Truncated:
		return "truncated"
	case t.Ending == playback.EndingNone:
		return "no ending"
	default:
		return string(t.Ending)
	}
}

// loadStoryFile decodes JSON or, by extension, YAML
func loadStoryFile(path string) (*story.Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return story.DecodeYAML(data)
	default:
		return story.DecodeJSON(data)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
