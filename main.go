package main

import "github.com/bookie/bookie/cmd"

func main() {
	cmd.Execute()
}
