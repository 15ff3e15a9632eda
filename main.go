package main

import "github.com/pders01/knowsync/cmd"

func main() {
	cmd.Execute()
}
