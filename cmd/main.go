package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"clinic-scheduling-api/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	envFile := flag.String("env", ".env", "path to an env file; process variables take precedence")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, *envFile)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		app.Log.Errorf("Server stopped: %v", err)
		stop()
		os.Exit(1)
	}
}
