package main

import "github.com/frahmantamala/employee-board/cmd"

func main() {
	cmd.Execute()
}
