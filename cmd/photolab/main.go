package main

import (
	"fmt"
	"log"
	"os"

	"github.com/photolab-studio/photolab/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("PHOTOLAB_LOG_LEVEL") == "debug" {
		log.Printf("photolab %s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := cli.Execute(Version); err != nil {
		fmt.Fprintf(os.Stderr, "photolab: %v\n", err)
		os.Exit(1)
	}
}
