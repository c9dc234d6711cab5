// Package database manages the optional scan registry connection.
//
// The registry keeps a catalog of past scans (id, counts, timestamps) so
// they can be listed without walking object storage. It is strictly
// optional: the blob store remains the source of truth for reports and
// scripts, and a failed database connection only downgrades the service
// to "no history listing".
//
// MySQL is the deployment driver; sqlite (including ":memory:") is used
// for tests and local one-shot runs.
package database
