package main

import (
	"os"

	"github.com/alpacahq/bizday/cmd"
	"github.com/alpacahq/bizday/utils/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Error("%v", err)
		log.Sync()
		os.Exit(1)
	}
}
