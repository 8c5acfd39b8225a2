package main

import "github.com/tetarus/arch-repo-tools/cmd/arch-repo-updater/cmd"

func main() {
	cmd.Execute()
}
