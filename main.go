package main

import "github.com/online-judge-tools/template-generator-webapp/cmd"

func main() {
	cmd.Execute()
}
