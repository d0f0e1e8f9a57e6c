package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/internal/cli"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SECTORLINK",
		Section: "1",
		Source:  "sectorlink " + version.Version,
		Manual:  "sectorlink manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
