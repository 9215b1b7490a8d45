package main

import "github.com/lu-zhengda/accountctl/internal/cli"

func main() {
	cli.Execute()
}
