package main

import "socialmedia/internal/cli"

func main() {
	cli.Execute()
}
