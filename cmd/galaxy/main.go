package main

import "github.com/funvibe/galaxy/pkg/cli"

func main() {
	cli.Run()
}
