// Command cachesim replays a memory address trace through a simulated cache
// and reports hit and miss rates.
package main

import "github.com/sarchlab/cachesim/cachesim/cmd"

func main() {
	cmd.Execute()
}
