package main

import "github.com/jsphweid/eartrainer/cmd"

func main() {
	cmd.Execute()
}
