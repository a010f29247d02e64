package main

import "github.com/krew-solutions/ascetic-attr-go/cmd/attrquery/cmd"

func main() {
	cmd.Execute()
}
