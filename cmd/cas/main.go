// Command cas serves the CAS planning, coaching and accessibility-robotics endpoints.
//
// Usage:
//
//	cas                       # same as "cas serve"
//	cas serve --config config/config.yaml
//	cas version
package main

func main() {
	Execute()
}
