// Package storage provides the sentinel errors shared by storage
// adapter implementations. The store interface itself lives in
// pkg/transport/store.go; pkg/storage/postgres implements it.
package storage
