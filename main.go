package main

import "github.com/theirongolddev/lifeplan/cmd"

func main() {
	cmd.Execute()
}
