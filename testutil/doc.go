// Package testutil provides testing utilities for notesync.
//
// This package is intended for use in tests only.
//
// # Scripted Transport
//
//	tr := testutil.NewTransport(`[]`)
//	tr.GatePuts()               // PUTs block until released
//	store := notesync.New(tr, "mem://doc")
//	_, res := store.Add(note)
//	tr.ReleasePuts(1)
//	res.Wait(ctx)
//	tr.PutCount()               // 1
//
// # Random Notes
//
//	rng := testutil.NewRNG(seed)
//	notes := rng.Notes(100, 5)  // 100 notes spread over 5 pages
package testutil
