// Package storage defines the persistence contracts used by the dashboard.
//
// The only persisted state is a cache of downloaded example datasets, so a
// restart does not need the network once every dataset has been fetched.
package storage
