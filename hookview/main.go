package main

import "github.com/oniononion36/pytorch/hookview/cmd"

func main() {
	cmd.Execute()
}
