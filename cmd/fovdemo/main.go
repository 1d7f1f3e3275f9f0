// fovdemo explores generated dungeons with per-entity field of view.
//
//	go build -o fovdemo ./cmd/fovdemo
//	./fovdemo dump --map-seed 42 --walk lllljj
//	./fovdemo play
package main

import (
	"os"

	"roguecore/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
