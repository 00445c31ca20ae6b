package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/wxalerts/internal/config"
	"github.com/jacoelho/wxalerts/internal/exit"
	"github.com/jacoelho/wxalerts/internal/logging"
	"github.com/jacoelho/wxalerts/internal/runner"
)

func main() {
	exitCode := run(os.Args)
	os.Exit(exitCode)
}

func run(args []string) int {
	cfg, exitResult := config.Parse(args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	logger, err := logging.New(logging.Options{
		Debug:  cfg.Debug,
		Format: cfg.LogFormat,
	})
	if err != nil {
		exitResult = exit.Errorf("Error: %v", err)
		exitResult.Print()
		return exitResult.ExitCode
	}

	r, exitResult := runner.New(cfg, logger)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return r.Run(ctx)
}
