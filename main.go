// main.go
package main

import "movie-watchlist/cmd"

func main() {
	cmd.Execute()
}
