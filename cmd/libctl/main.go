package main

import "github.com/nookcoder/library-console/internal/cli/cmd"

func main() {
	cmd.Execute()
}
