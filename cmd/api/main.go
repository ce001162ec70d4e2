package main

import (
	"os"

	"github.com/cinelist/movie-catalog-service/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		os.Exit(1)
	}
}
