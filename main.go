package main

import "file-integrity/cmd"

func main() {
	cmd.Execute()
}
