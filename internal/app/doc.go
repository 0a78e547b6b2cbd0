// Package app wires the sales dashboard together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Create the configured data source (csv, sheets or file)
//	2. Initialize OpenTelemetry and the pipeline instruments
//	3. Create the report and health services
//	4. Set up the chi router, middleware chain and handlers
//	5. Configure the HTTP server
//
// Start serves HTTP in the background, builds the first dashboard right away
// and rebuilds it every cache period. Stop drains the server, waits for the
// refresh loop and flushes telemetry.
//
// # Usage
//
//	application, err := app.NewApplication(ctx, cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// NewPipeline gives the CLI the same report service without the server, for
// one-shot rendering and exports.
package app
