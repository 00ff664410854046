package main

import "github.com/sonartools/sonarpdf/cmd"

func main() {
	cmd.Execute()
}
