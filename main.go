package main

import "github.com/theirongolddev/horeca/cmd"

func main() {
	cmd.Execute()
}
