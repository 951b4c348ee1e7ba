package main

import "github.com/signalregistry/api/internal/registryctl"

func main() {
	registryctl.Execute()
}
