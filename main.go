package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bioattend/attendweb/internal/attendcli"
)

func main() {
	if err := attendcli.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, attendcli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr, "usage: attendweb setup --session-secret <secret> [--api-base-url url] [--addr addr] [--force]")
			fmt.Fprintln(os.Stderr, "       attendweb run")
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
