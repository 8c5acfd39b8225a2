package main

import "github.com/tetarus/arch-repo-tools/cmd/arch-repo-indexer/cmd"

func main() {
	cmd.Execute()
}
