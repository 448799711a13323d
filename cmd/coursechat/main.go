package main

import (
	"os"

	"github.com/studyhall-labs/coursechat-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
