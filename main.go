package main

import "github.com/naka-gawa/github-contrib-stats/cmd"

func main() {
	cmd.Execute()
}
