package probe

import "os"

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Blog Routes Probe
=================

Sends every documented request to a running service and verifies the responses.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -rounds int
        Times every case is sent (default 1)
  -timeout duration
        HTTP request timeout (default 5s)
  -verbose
        Log passing cases too
  -help
        Show this help message

Examples:
  go run ./cmd/probe -url http://localhost:8080
  go run ./cmd/probe -rounds 100 -workers 32
`)
}
