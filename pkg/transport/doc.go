// Package transport provides HTTP plumbing shared by the adapter in
// pkg/transport/http: JSON response writers, request-ID propagation,
// panic recovery, request logging, and the store interfaces the
// handlers are written against.
package transport
