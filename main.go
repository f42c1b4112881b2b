package main

import (
	"fmt"
	"os"

	"fjacquet/autocat/cmd/batch"
	"fjacquet/autocat/cmd/cache"
	"fjacquet/autocat/cmd/categorise"
	"fjacquet/autocat/cmd/matchcategory"
	"fjacquet/autocat/cmd/root"
	"fjacquet/autocat/cmd/rules"
	"fjacquet/autocat/cmd/vat"
	"fjacquet/autocat/internal/config"
)

func init() {
	// Load .env before Viper reads AUTOCAT_* variables
	config.LoadEnv(nil)

	root.Init()

	root.Cmd.AddCommand(categorise.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(vat.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
	root.Cmd.AddCommand(matchcategory.Cmd)
	root.Cmd.AddCommand(cache.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
