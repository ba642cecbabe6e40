// Package main is the entry point of aiko.
package main

import (
	"github.com/aiko-cli/aiko/cmd"
	"github.com/aiko-cli/aiko/config"
	"github.com/aiko-cli/aiko/internal/cache"
	"github.com/aiko-cli/aiko/log"
	"github.com/aiko-cli/aiko/where"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go func() {
		if err := cache.NewDisk(where.Responses(), cache.DiskTTL).Prune(); err != nil {
			log.Warnf("prune response cache: %v", err)
		}
	}()

	cmd.Execute()
}
