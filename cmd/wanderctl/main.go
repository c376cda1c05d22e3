// README: wanderctl; offline tools for the trip planner (normalize model output, generate a plan, run migrations).
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
