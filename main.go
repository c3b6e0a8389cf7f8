// The main package for the mkbscrape executable.
package main

import (
	"github.com/kargo-kult-wahrheit/ICD-10-serbian/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
