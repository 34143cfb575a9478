// implindex prints, converts and serves implementor indexes.
package main

import "github.com/NVIDIA/implindex/pkg/cli"

func main() {
	cli.Execute()
}
