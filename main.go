package main

import "devserve/cmd"

func main() {
	cmd.Execute()
}
