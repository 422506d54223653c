package cmd

import (
	"github.com/achilleasa/horizon/log"
	"github.com/urfave/cli"
)

var logger = log.New("horizon")

func setupLogging(ctx *cli.Context) {
	if level := ctx.GlobalString("log-level"); level != "" {
		log.SetLevel(log.ParseLevel(level))
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
