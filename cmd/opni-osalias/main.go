package main

import "github.com/rancher/opni-osalias/pkg/osalias"

func main() {
	osalias.Execute()
}
