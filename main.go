package main

import "github.com/Alijeyrad/portfolio_backend/cmd"

func main() {
	cmd.Execute()
}
