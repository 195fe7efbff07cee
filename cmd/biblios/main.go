package main

import "biblios/cmd/biblios/command"

func main() {
	command.Execute()
}
