package main

import "github.com/oshokin/dotpptx/cmd/dopptx/cmd"

func main() {
	cmd.Execute()
}
