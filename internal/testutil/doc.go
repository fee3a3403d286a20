// Package testutil contains helper builders and utilities used across tests
// to reduce boilerplate when constructing core model objects (validation
// results, store keys) and observing backend behavior. These helpers are
// intentionally minimal and are not intended for production usage.
package testutil
