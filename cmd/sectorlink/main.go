package main

import (
	"os"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
