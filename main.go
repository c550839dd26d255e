package main

import "github.com/radicle-lang/radicle/cmd"

func main() {
	cmd.Execute()
}
