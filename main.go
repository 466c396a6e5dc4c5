/*
Copyright © 2025 Sanskara Games
*/

package main

import (
	"log"

	"github.com/spf13/cobra"
)

const (
	releaseVersion = "1.0.2"
)

func main() {
	log.SetFlags(0)
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
