package main

import "github.com/init-pkg/siot-loader/internal/bootstrap"

func main() {
	bootstrap.Run()
}
