package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/app"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/application/usecase"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/cli"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/config"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/report"
	"github.com/MarwanRagab123/Bank-risk-analysis/pkg/observability"
)

func main() {
	input := flag.String("input", "data/transactions.csv", "transaction ledger (CSV)")
	outDir := flag.String("out", "Reports", "report output directory")
	threshold := flag.String("threshold", "", `lowest band flagged as suspicious, e.g. "High Risk" (overrides FLAG_THRESHOLD)`)
	policyFile := flag.String("policy", "", "YAML scoring policy (overrides SCORING_POLICY_FILE)")
	publish := flag.Bool("publish", false, "publish flag events to Kafka (needs KAFKA_BROKERS)")
	persist := flag.Bool("persist", false, "store the run in PostgreSQL (needs DATABASE_URL)")
	noClean := flag.Bool("no-clean", false, "score rows as loaded without dropping incomplete or duplicate rows")
	interactive := flag.Bool("interactive", false, "run the step-by-step menu")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	if *threshold != "" {
		cfg.FlagThreshold = *threshold
	}
	if *policyFile != "" {
		cfg.PolicyFile = *policyFile
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: "text",
		Output: os.Stderr,
	})

	policy, err := cfg.Policy()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	gen := report.NewGenerator(*outDir, logger)

	if *interactive {
		session := cli.NewSession(policy.Pipeline(), gen, *input, os.Stdin, os.Stdout, logger)
		if err := session.Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	adapters, err := app.Connect(ctx, cfg, app.Selection{Persist: *persist, Publish: *publish}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer adapters.Close()

	uc := usecase.NewRunAssessment(policy.Pipeline(), adapters.Repo, adapters.Publisher, logger)
	opts := cli.BatchOptions{Input: *input, SkipClean: *noClean}
	if err := cli.Batch(ctx, opts, uc, gen, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		adapters.Close()
		os.Exit(1)
	}
}
