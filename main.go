package main

import "github.com/hanifn/expense-log/cmd"

func main() {
	cmd.Execute()
}
