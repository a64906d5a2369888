package main

import (
	"github.com/eleven-am/tasknest/cmd"
)

func main() {
	cmd.Execute()
}
