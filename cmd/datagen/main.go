package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"popcli/internal/datagen"
)

func main() {
	cfg := datagen.DefaultConfig()
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.IntVar(&cfg.PriorRows, "prior-rows", cfg.PriorRows, "rows in the prior period file")
	flag.IntVar(&cfg.CurrentRows, "current-rows", cfg.CurrentRows, "rows in the current period file")
	flag.StringVar(&cfg.FilePrefix, "prefix", cfg.FilePrefix, "period file prefix")
	flag.StringVar(&cfg.PriorDate, "prior", cfg.PriorDate, "prior period date (YYYY-MM-DD)")
	flag.StringVar(&cfg.CurrentDate, "current", cfg.CurrentDate, "current period date (YYYY-MM-DD)")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory")
	flag.Parse()

	priorPath, currentPath, err := datagen.New(nil, cfg).Run()
	if err != nil {
		slog.Error("Generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(priorPath)
	fmt.Println(currentPath)
}
