package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	transitapi "github.com/oisemob/transit-api"
	"github.com/oisemob/transit-api/config"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	configPath := flag.String("config", "", "path to config.yml (defaults to ./config.yml)")
	network := flag.String("network", "", "network identifier for oneshot mode")
	line := flag.String("line", "", "line number for oneshot mode (optional)")
	flag.Parse()

	transitapi.InitLogging()

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	app := transitapi.NewApp(cfg)

	switch *mode {
	case "serve":
		ctx, cancel := context.WithCancel(context.Background())
		go app.RunMonitor(ctx)
		app.StartServer()
		app.HandleGracefulShutdown(cancel)
	case "oneshot":
		if *network == "" {
			log.Fatal("oneshot mode requires -network")
		}
		oneshot(app, *network, *line)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func oneshot(app *transitapi.App, network, line string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	now := time.Now()

	var out any
	var err error
	if line != "" {
		out, err = app.Resolver().FormattedActiveDisruptionsForLine(ctx, network, line, now)
	} else {
		out, err = app.Resolver().ActiveDisruptionsForNetwork(ctx, network, now)
	}
	if err != nil {
		log.Fatalf("disruption lookup: %v", err)
	}
	buf, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Println(string(buf))
}
