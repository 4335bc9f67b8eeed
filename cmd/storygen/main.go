package main

import (
	"storygen/cmd/handlers"
	"storygen/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
