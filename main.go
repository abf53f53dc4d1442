// Package main is the entry point for the archiver application.
package main

import (
	"time"

	"github.com/archiver-cli/archiver/cmd"
	"github.com/archiver-cli/archiver/config"
	"github.com/archiver-cli/archiver/key"
	"github.com/archiver-cli/archiver/log"
	"github.com/archiver-cli/archiver/network"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	if seconds := viper.GetInt(key.FetchTimeoutSeconds); seconds > 0 {
		network.SetTimeout(time.Duration(seconds) * time.Second)
	}

	cmd.Execute()
}
