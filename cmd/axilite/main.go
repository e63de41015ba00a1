package main

import "github.com/sarchlab/axilite/cmd/axilite/cmd"

func main() {
	cmd.Execute()
}
