// Package entity defines the domain entities for the jobs feature.
package entity

// Job is a single remote job listing as shown to clients.
type Job struct {
	Title    string
	Company  string
	Location string
}
