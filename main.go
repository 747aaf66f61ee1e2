package main

import "crate-licenses/internal/cli"

func main() {
	cli.Execute()
}
