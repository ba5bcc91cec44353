package main

import "github.com/ValentinKolb/rMutex/cmd"

func main() {
	cmd.Execute()
}
