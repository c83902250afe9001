package main

import "github.com/circuitsmith/kisvg/cmd/kisvg/cmd"

func main() {
	cmd.Execute()
}
