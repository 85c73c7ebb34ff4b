package main

import "github.com/cmmoran/flugen/cmd"

func main() {
	cmd.Execute()
}
