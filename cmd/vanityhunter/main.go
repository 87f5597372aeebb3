package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Amr-9/VanityHunter/internal/config"
	"github.com/Amr-9/VanityHunter/internal/logger"
	"github.com/Amr-9/VanityHunter/internal/ui"
	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/generator/gpu"
	"github.com/Amr-9/VanityHunter/pkg/search"
)

const version = "0.4"

// Exit codes
const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.NewConfig()
	code := exitOK
	rootCmd := &cobra.Command{
		Use:     "vanityhunter [PATTERN]",
		Short:   "Vanity address generator for Algorand, Lisk and friends",
		Version: version,
		Long: `Searches random keys until the derived address starts with PATTERN.

PATTERN is an address prefix for algorand, solana, aptos, sui, ethereum
and bitcoin (Taproot), where '*' matches any character. For lisk it is the
maximum number of digits in the numeric address (default 14).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Pattern = args[0]
			}
			code = runSearch(cmd, cfg)
			return nil
		},
	}
	cfg.BindFlags(rootCmd.Flags())
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	return code
}

func runSearch(cmd *cobra.Command, cfg *config.Config) int {
	if err := cfg.Load(cmd.Flags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	log, err := logger.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	if cfg.ListGPUs {
		return listGPUs(log)
	}
	if err := cfg.Validate(); err != nil {
		log.Error(err)
		return exitError
	}

	var out *os.File
	if cfg.Output != "" {
		out, err = os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			log.Errorf("Failed to open output file: %v", err)
			return exitError
		}
		defer out.Close()
	}

	opts := search.Options{
		Network:    cfg.NetworkID(),
		Pattern:    cfg.Pattern,
		Limit:      cfg.Limit,
		CPUWorkers: cfg.CPUThreads,
		Log:        log,
		Emit: func(res generator.Result) {
			ui.PrintMatch(os.Stdout, res)
			if out == nil {
				return
			}
			if _, err := out.WriteString(ui.FormatRecord(res, time.Now())); err != nil {
				log.Warnf("Save failed: %v", err)
			}
		},
	}
	if cfg.GPU || cfg.GPUEmulate {
		threads := cfg.GPUThreads
		if cfg.GPUEmulate && !cmd.Flags().Changed("gpu-threads") {
			threads = 0
		}
		opts.GPU = &search.GPUOptions{
			Options: gpu.Options{
				Platform:      cfg.GPUPlatform,
				Device:        cfg.GPUDevice,
				Threads:       threads,
				LocalWorkSize: cfg.GPULocalWorkSize,
				KernelDir:     cfg.GPUKernelDir,
			},
			Emulate: cfg.GPUEmulate,
		}
	}
	if !cfg.NoProgress {
		opts.Progress = os.Stderr
		opts.ProgressInterval = cfg.ProgressInterval
	}

	coord, err := search.New(opts)
	if err != nil {
		log.Error(err)
		return exitError
	}
	ui.PrintSearchInfo(os.Stderr, opts.Network, coord.Target().Pattern(), coord.EstimatedAttempts())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = coord.Run(ctx)
	stop()
	ui.PrintSummary(os.Stderr, coord.Stats())

	switch {
	case err == nil, errors.Is(err, search.ErrLimitReached):
		return exitOK
	case errors.Is(err, context.Canceled):
		ui.PrintWarning(os.Stderr, "Cancelled")
		return exitInterrupted
	default:
		log.Error(err)
		return exitError
	}
}

func listGPUs(log logrus.FieldLogger) int {
	infos, err := gpu.Platforms()
	if err != nil {
		log.Error(err)
		return exitError
	}
	for _, info := range infos {
		fmt.Printf("[%d:%d] %s %s (%s, %d compute units, %d MB)\n",
			info.Platform, info.Device, info.Vendor, info.Name,
			info.PlatformName, info.ComputeUnits, info.GlobalMem/(1<<20))
	}
	return exitOK
}
