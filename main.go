// Package main is the entry point for the mediadex application.
package main

import (
	"github.com/mediadex-cli/mediadex/cmd"
	"github.com/mediadex-cli/mediadex/config"
	"github.com/mediadex-cli/mediadex/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
