// CLI entry point for VendorIQ.
package main

import "github.com/turtacn/VendorIQ/internal/interfaces/cli"

func main() {
	cli.Execute()
}
