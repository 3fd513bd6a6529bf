// Package app wires the gas price visualizer together and runs its pipeline.
//
// # Pipeline
//
//	1. Initialize logging and tag the context with a run ID
//	2. Load the observation workbook (fatal on error)
//	3. Render the time-series PNG
//	4. Render the heat-map HTML (a malformed Location is fatal)
//	5. Render the interactive dashboard HTML
//	6. Capture previews of the HTML outputs, when enabled
//	7. Write the run metrics textfile, when configured
//
// Renderer save failures are logged and do not stop the run. The app does
// not call os.Exit; main decides the exit code from the returned error.
package app
