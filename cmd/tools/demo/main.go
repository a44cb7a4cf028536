package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/z-ledger/backend/internal/config"
	"github.com/zhouzirui/z-ledger/backend/internal/demo"
	"github.com/zhouzirui/z-ledger/backend/internal/logger"
	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] .env not loaded, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	kind := flag.String("kind", "all", "scenario to run: all, "+strings.Join(demo.Names(), ", "))
	quiet := flag.Bool("quiet", false, "suppress store event logs")
	flag.Parse()

	var observer record.Observer = record.Nop
	if !*quiet {
		logOpts := cfg.Log
		logOpts.Output = "stderr"
		observer = record.NewLogObserver(logger.New(logOpts))
	}

	names := demo.Names()
	if *kind != "all" {
		if _, ok := demo.Lookup(*kind); !ok {
			flag.Usage()
			log.Fatalf("unknown scenario %q", *kind)
		}
		names = []string{*kind}
	}

	ctx := context.Background()
	for _, name := range names {
		scenario, _ := demo.Lookup(name)
		fmt.Printf("\n===== %s =====\n", strings.ToUpper(name))
		if err := scenario(ctx, os.Stdout, observer); err != nil {
			log.Fatalf("scenario %s failed: %v", name, err)
		}
	}
}
