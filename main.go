package main

import "github.com/fakeyudi/worktrack/cmd"

func main() {
	cmd.Execute()
}
