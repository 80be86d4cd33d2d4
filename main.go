package main

import "github.com/oltecnologia/analyst-management/cmd"

func main() {
	cmd.Execute()
}
