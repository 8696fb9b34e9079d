package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appconfig "github.com/l0he1g/BaYeAgent/config"
	"github.com/l0he1g/BaYeAgent/internal/research"
	"github.com/l0he1g/BaYeAgent/internal/researcher"
	srv "github.com/l0he1g/BaYeAgent/internal/server"
)

func main() {
	var root = &cobra.Command{Use: "baye"}

	var cfgPath string
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")

	var serveAddr string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serveAddr == "" {
				serveAddr = os.Getenv("BAYE_HTTP_ADDR")
			}
			return srv.Run(cfgPath, serveAddr)
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address")

	var task string
	var topic string
	var freshness string
	var rounds int
	var researchCmd = &cobra.Command{
		Use:   "research [query...]",
		Short: "Run a bounded research loop and print the session summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appconfig.LoadConfig(cfgPath)
			res, err := srv.BuildResearcher(cfg)
			if err != nil {
				return err
			}
			if rounds <= 0 {
				rounds = cfg.Research.MaxRounds
			}
			if freshness == "" {
				freshness = cfg.Search.Freshness
			}
			fw, ok := research.ParseFreshness(freshness)
			if !ok {
				return fmt.Errorf("unknown freshness %q", freshness)
			}
			if task == "" {
				task = args[0]
			}

			sess := research.NewSession(rounds)
			sess.SetTask(task, nil, 0, string(fw))

			ctx := context.Background()
			for _, query := range args {
				decision := sess.ShouldContinue(false, nil)
				if !decision.ShouldContinue {
					fmt.Fprintf(os.Stderr, "stopping: %s\n", decision.Reason)
					break
				}
				if _, err := res.RunRound(ctx, sess, query, task, researcher.RoundOptions{
					MaxResults: cfg.Search.MaxResults,
					TopK:       cfg.Search.TopK,
					Topic:      topic,
					Freshness:  fw,
				}); err != nil {
					return err
				}
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"status":  sess.Status(),
				"summary": sess.Summarize(),
			})
		},
	}
	researchCmd.Flags().StringVar(&task, "task", "", "task description (defaults to the first query)")
	researchCmd.Flags().StringVar(&topic, "topic", "", "authority topic hint (finance, news, tech, academic)")
	researchCmd.Flags().StringVar(&freshness, "freshness", "", "freshness window (oneDay, oneWeek, oneMonth, oneYear, noLimit)")
	researchCmd.Flags().IntVar(&rounds, "rounds", 0, "maximum search rounds")

	root.AddCommand(serve, researchCmd)
	_ = root.Execute()
}
