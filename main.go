package main

import "github.com/stuttgart-things/catalog-sync/cmd"

func main() {
	cmd.Execute()
}
