// Command lunamon is a marine instrumentation gateway: it parses NMEA 0183
// and AIS traffic from onboard instruments, republishes it through a
// hierarchical data model, and serves that model to shore-side clients over
// an embedded MQTT 3.1.1 broker.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
