package main

import (
	"flag"
	"fmt"
	"os"
	"stationd/internal/di"
	"stationd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to configuration file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "Mirror logs to stderr")
	flag.Parse()

	app, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stationd: %s\n", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "stationd: %s\n", err)
		os.Exit(1)
	}
}
