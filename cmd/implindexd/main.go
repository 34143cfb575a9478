// implindexd serves the implementor index over HTTP.
package main

import (
	"os"

	"github.com/NVIDIA/implindex/pkg/api"
)

func main() {
	// Serve logs the failure itself.
	if err := api.Serve(); err != nil {
		os.Exit(1)
	}
}
