package main

import "github.com/abnegate/dit/cli"

func main() {
	cli.Execute()
}
