package main

import (
	"os"

	"github.com/schmitthub/fcgen/internal/fcgen"
)

func main() {
	os.Exit(fcgen.Main())
}
