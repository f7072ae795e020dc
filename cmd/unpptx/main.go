package main

import "github.com/oshokin/dotpptx/cmd/unpptx/cmd"

func main() {
	cmd.Execute()
}
