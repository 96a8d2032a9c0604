// Package diff provides utilities for preparing raw unified diff text
// for the review pipeline: line-ending normalization and raw line
// statistics. Both operate on plain text and never fail.
package diff
