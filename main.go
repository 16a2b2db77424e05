package main

import "github.com/oderahub/stackpledge/cli"

func main() {
	cli.Execute()
}
