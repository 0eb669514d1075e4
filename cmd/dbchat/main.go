package main

import "github.com/dmartins/dbchat/internal/commands"

func main() {
	commands.Execute()
}
