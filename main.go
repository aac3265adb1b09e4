package main

import "github.com/tsunamilab/vortmesh/cmd"

func main() {
	cmd.Execute()
}
