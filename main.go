package main

import "github.com/coder/memento/cmd"

func main() {
	cmd.Execute()
}
