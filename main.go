package main

import "github.com/Beastly713/steg/cmd"

func main() {
	cmd.Execute()
}
