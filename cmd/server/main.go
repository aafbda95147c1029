package main

import "hris/internal/app/server"

func main() {
	server.Run()
}
