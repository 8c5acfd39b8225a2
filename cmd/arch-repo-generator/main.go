package main

import "github.com/tetarus/arch-repo-tools/cmd/arch-repo-generator/cmd"

func main() {
	cmd.Execute()
}
