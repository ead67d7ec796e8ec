// Package main starts the llmarch command line. Its serve command runs an HTTP
// server for the diagram pages, the JSON catalog API and health checks; the
// other commands inspect the same catalog from the terminal.
package main

import "github.com/llmarch/core/cmd/api/commands"

func main() {
	commands.Execute()
}
