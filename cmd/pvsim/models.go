package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-pvsim/pkg/models"
)

func cmdModels(args []string) error {
	fs := flag.NewFlagSet("models", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, stage := range models.Stages() {
		fmt.Fprintf(os.Stdout, "%-14s %s\n", stage, strings.Join(models.Keys(stage), ", "))
	}
	return nil
}
