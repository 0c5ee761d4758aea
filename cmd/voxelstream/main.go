// Command voxelstream runs the streaming voxel world engine.
package main

import (
	"fmt"
	"os"

	"github.com/voxelstream/voxelstream/cmd/voxelstream/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
