package main

import "mrview/internal/cli"

func main() {
	cli.Execute()
}
