package main

import "github.com/shaharia-lab/fanout/cmd"

func main() {
	cmd.Execute()
}
