package main

import "github.com/rnwolfe/tally/cmd"

func main() {
	cmd.Execute()
}
