package cmd

import "github.com/aiko-cli/aiko/log"

var logger = log.Component("cmd")
