package main

import "JSMChanges/internal/cli"

func main() {
	cli.Execute()
}
