package main

import "github.com/Intronet/Cadence-sub001/cmd"

func main() {
	cmd.Execute()
}
