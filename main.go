package main

import "github.com/NahomAnteneh/wit/cmd"

func main() {
	cmd.Execute()
}
