// Package minio stores note documents as objects in MinIO or any other
// S3-compatible object store reachable through minio-go.
//
// Each document key becomes one object below the configured prefix; a Put
// overwrites the whole object.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	})
//	if err != nil {
//	    return err
//	}
//
//	store := minioblob.NewStore(client, "notes", "docs/")
//	s := notesync.New(transport.NewBlob(store), "/doc-42.json")
package minio
