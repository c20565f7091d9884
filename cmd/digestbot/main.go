package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digestbot/internal/app"
	"digestbot/internal/digest"
)

func main() {
	var (
		cfgPath string
		modeArg string
	)
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config file (yaml or json)")
	flag.StringVar(&modeArg, "mode", "", "run one digest (daily|weekly) and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx, cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	// One-shot mode: run a single digest, print the result, exit.
	if modeArg != "" {
		mode, err := digest.ParseMode(modeArg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			os.Exit(2)
		}
		res := a.RunOnce(ctx, mode)
		_ = json.NewEncoder(os.Stdout).Encode(res)
		if res.Status != digest.StatusSent {
			os.Exit(1)
		}
		return
	}

	if err := a.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "fatal start:", err)
		os.Exit(1)
	}

	<-ctx.Done()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	a.Stop(stopCtx)
}
