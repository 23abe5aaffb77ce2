package main

import "github.com/llehouerou/rpgmplay/internal/cli"

func main() {
	cli.Execute()
}
