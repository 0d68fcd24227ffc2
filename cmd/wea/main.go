package main

import "github.com/panyam/wea/cmd/wea/commands"

func main() {
	commands.Execute()
}
