package main

import "github.com/flatsrc/flatsrc/internal/cli"

func main() {
	cli.Execute()
}
