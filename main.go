package main

import "github.com/subsh/subsh/cmd"

func main() {
	cmd.Execute()
}
