package main

import "github.com/myspotontheweb/presentation-kubernetes/internal/cli"

func main() {
	cli.Execute()
}
