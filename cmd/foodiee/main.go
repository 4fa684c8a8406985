// Package main provides the foodiee command line client
package main

import "github.com/foodiee/recipes/internal/cli"

func main() {
	cli.Execute()
}
