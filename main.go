package main

import (
	"github.com/GregDucq/PanGenomePipeline/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
