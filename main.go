package main

import (
	"os"

	"github.com/golang/glog"

	"github.com/zeu5/cardmdp/benchmarks/cmd"
)

func main() {
	err := cmd.RootCommand().Execute()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
