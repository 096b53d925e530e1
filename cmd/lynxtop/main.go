package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/moresonsunn/lynxtop/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override lynxtop config path (optional)")
	token := flag.String("token", "", "API token; overrides the config token (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, Token: *token}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "lynxtop: %v\n", err)
		return 1
	}
	return 0
}
