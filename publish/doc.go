// Package publish uploads produced schedule files to object storage.
package publish
