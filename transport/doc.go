// Package transport defines the request function the sync engine uses to
// talk to its remote endpoint, together with the failure kinds it reports.
//
// Two implementations are provided:
//   - HTTP issues real requests through a net/http client.
//   - Blob serves GET and PUT directly from a blobstore.Store.
//
// Any function with the right shape can be adapted through Func.
package transport
