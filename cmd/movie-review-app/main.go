package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/StormKing969/movie-review-app/internal/di"
	"github.com/StormKing969/movie-review-app/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "configs/config.yaml", "path to the YAML config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to stderr")
	flag.BoolVar(&flags.Console, "console", false, "run the terminal front end instead of the HTTP server")
	flag.Parse()

	var (
		cleanup func()
		err     error
	)
	if flags.Console {
		_, cleanup, err = di.InitConsole(flags)
	} else {
		_, cleanup, err = di.InitApp(flags)
	}
	if cleanup != nil {
		cleanup()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
