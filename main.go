// Command releases generates a release statistics dashboard from the
// merged pull requests of the configured repositories.
package main

import "github.com/rnaudi/releases/cmd"

func main() {
	cmd.Execute()
}
