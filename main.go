package main

import "github.com/chris/planner/cmd"

func main() {
	cmd.Execute()
}
