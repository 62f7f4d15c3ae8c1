package main

import "github.com/user/jobboard/cmd"

func main() {
	cmd.Execute()
}
