// Package http implements the HTTP handlers of the Sales Pulse server. The
// handlers stay thin: they parse the request, ask the report service for the
// current dashboard and format the response.
//
// # Routes
//
//	GET  /                              interactive dashboard page
//	GET  /api/report                    every aggregate as JSON
//	GET  /api/report/tables             table names and titles
//	GET  /api/report/tables/{name}      one table, ?format=json|csv
//	GET  /api/report/export.xlsx        every table as a workbook
//	POST /api/report/refresh            rebuild the dashboard now
//	GET  /api/charts                    mount points of the dashboard
//	GET  /api/charts/{id}               scene of one mount point
//	GET  /api/charts/{id}/svg           one chart as SVG
//	GET  /api/health[/live|/ready]      health probes
//	GET  /api/version                   build information
//
// # Error Handling
//
// Errors are written by the shared errors.ErrorHandler as RFC 7807 problem
// details, for example:
//
//	{
//	    "type": "/errors/data/table-not-found",
//	    "title": "Table Not Found",
//	    "status": 404,
//	    "detail": "unknown report table: foo",
//	    "instance": "/api/report/tables/foo"
//	}
//
// # Testing
//
// Handlers are tested with httptest against a stub DashboardProvider built
// from the shared sales fixture.
package http
