package main

import "github.com/oddsline/oddsline/cmd"

func main() {
	cmd.Execute()
}
