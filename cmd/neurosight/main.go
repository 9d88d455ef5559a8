package main

import "github.com/philipparndt/neurosight/cmd"

func main() {
	cmd.Execute()
}
