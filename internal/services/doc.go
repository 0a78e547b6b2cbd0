// Package services implements the business logic layer of Sales Pulse.
// It sits between the HTTP handlers and the data source so that the
// pipeline can be driven the same way from the server and the CLI.
//
// # Report pipeline
//
// ReportService runs the four stages of a dashboard build:
//
//	fetch      source.Source delivers raw rows
//	normalize  dataprocessing.Normalizer types every row
//	aggregate  dataprocessing.Aggregator computes the report
//	render     charts are drawn onto a fresh chart.Board
//
// Each stage runs in its own span and its duration is recorded in the
// pipeline metrics. The last dashboard is cached for the configured TTL;
// concurrent callers share one build.
//
// # Mount points
//
// The board carries fixed mount points chart1 to chart11. chart9 and chart10
// are containers: one mount point is allocated under them per product group.
//
// # Health
//
// HealthService answers the liveness, readiness and version endpoints. The
// service is ready as soon as one dashboard has been built.
package services
