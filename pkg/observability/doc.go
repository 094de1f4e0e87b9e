/*
Package observability provides tools for monitoring turingtoy runs.

It includes Prometheus metrics and structured logging delivered through lifecycle
hooks, and a way to combine several hook sets into one.
*/
package observability
