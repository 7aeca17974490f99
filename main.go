package main

import "github.com/moneygrow/moneygrow/cmd"

func main() {
	cmd.Execute()
}
