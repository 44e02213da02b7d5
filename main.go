package main

import (
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
