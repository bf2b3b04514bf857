package main

import "github.com/taskforge-ai/taskforge/cmd"

func main() {
	cmd.Execute()
}
