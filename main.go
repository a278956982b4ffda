package main

import "github.com/deckhubapp/deckhub/cmd"

func main() {
	cmd.Execute()
}
