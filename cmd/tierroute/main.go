// tierroute classifies tasks into model tiers and prices the result.
//
// Usage:
//
//	# Classify a task and show the chosen model and estimated cost
//	tierroute classify "Summarize this article"
//
//	# Re-route a task whose first attempt failed
//	tierroute classify --failed "Read the config file"
//
//	# Price 5000 output tokens on the premium tier
//	tierroute cost --tier 3 --tokens 5000
//
//	# Project monthly spend for 100k output tokens a day
//	tierroute monthly --daily-tokens 100000
//
//	# Check a scenario file, re-running whenever it changes
//	tierroute scenarios --file scenarios.json --watch
//
//	# Print the configuration file schema
//	tierroute schema
package main

func main() {
	Execute()
}
