package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/blogroutes/internal/probe"
	"github.com/okian/blogroutes/pkg/logger"
)

// Default configuration constants.
const (
	defaultWorkers = 2 // multiplier for runtime.NumCPU()
	defaultTimeout = 5 * time.Second
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8000", "Base URL of the service")
		workers = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		rounds  = flag.Int("rounds", 1, "Times every case is sent")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log passing cases too")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("probe")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &probe.Config{
		BaseURL: *baseURL,
		Workers: *workers,
		Rounds:  *rounds,
		Timeout: *timeout,
		Verbose: *verbose,
	}
	if _, err := probe.Run(ctx, cfg, probe.DefaultCases(), log); err != nil {
		log.Error(ctx, "probe failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
