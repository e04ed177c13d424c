package main

import (
	"os"

	"github.com/bnema/registry-cli/internal/adapters/in/cli"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	os.Exit(cli.Execute(version, commit, date))
}
