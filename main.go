package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/cmd"
)

func main() {
	cmd.Execute()
}
