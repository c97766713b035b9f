// Command notesync inspects and edits a note document through the sync
// engine, and can serve a reference document endpoint.
//
//	notesync --url https://example.com/notes/42 list
//	notesync --backend file --dir ./data --url /doc.json --create add --page 0 --text hello
//	notesync --backend minio --endpoint localhost:9000 --bucket notes serve --addr :8080
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
