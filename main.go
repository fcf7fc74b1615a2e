package main

import "outgo/cmd"

func main() {
	cmd.Execute()
}
