package main

import "brainshift/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
