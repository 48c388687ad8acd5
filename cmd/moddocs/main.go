package main

import "moddocs/internal/cli"

func main() {
	cli.Execute()
}
