package main

import "github.com/wasabeef/git-workers/cmd"

func main() {
	cmd.Execute()
}
