// Package shared holds helpers used by more than one package. Its testutil
// subpackage provides log capture and sales fixtures for tests.
package shared
