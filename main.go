package main

import (
	"project-tracker/cmd/server"
)

func main() {
	server.Init()
	server.Run()
}
