package main

import "texture-scanner/cmd"

func main() {
	cmd.Execute()
}
