// Package storage provides object storage access for scan artifacts.
//
// It has two layers:
//
//   - Client: a thin interface over the Minio SDK, kept mockable for tests.
//   - Store: a key-value blob view over one bucket (Get/Put/Delete/List/Move
//     keyed by slash-separated paths), which is what the scan engine uses.
//
// The Store layer exists so the reconciliation core never touches Minio
// types directly; swapping the backing implementation only requires a new
// Client.
package storage
