package main

import "github.com/mspec-go/mspec/cmd"

func main() {
	cmd.Execute()
}
