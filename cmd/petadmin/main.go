package main

import (
	"os"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
