package main

import "github.com/panyam/pibench/cmd/pibench/commands"

func main() {
	commands.Execute()
}
