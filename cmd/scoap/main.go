package main

import "github.com/evenstarsworn/scoap.github.io/cmd/scoap/cmd"

func main() {
	cmd.Execute()
}
