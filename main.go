// Command plantpipe converts plant catalog pages into the site's CSV data.
package main

import "github.com/gaurav-prasanna/plantpipe/cmd"

func main() {
	cmd.Execute()
}
