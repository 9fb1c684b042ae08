// Command arbsim runs and verifies two-requester arbiters.
package main

import "github.com/sarchlab/arbsim/arbsim/cmd"

func main() {
	cmd.Execute()
}
