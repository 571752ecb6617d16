package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/compozy/issues-action/pkg/issues/cmd"
	"github.com/compozy/issues-action/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := cmd.NewRootCmd(cmd.NewRunnerFactory(os.Stdout))
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("issues-action failed", "error", err)
		os.Exit(1)
	}
}
