package main

import "github.com/boardlyhq/boardly/cmd"

func main() {
	cmd.Execute()
}
