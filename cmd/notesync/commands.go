package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/urfave/cli/v2"

	"github.com/hupe1980/notesync"
	"github.com/hupe1980/notesync/model"
)

var (
	pageFlag = &cli.IntFlag{
		Name:     "page",
		Usage:    "page index",
		Required: true,
	}
	indexFlag = &cli.IntFlag{
		Name:     "index",
		Usage:    "position of the note on its page",
		Required: true,
	}
)

// withStore opens the store, runs fn and closes the store again.
func withStore(fn func(c *cli.Context, store *notesync.Store) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		store, err := openStore(c)
		if err != nil {
			return cli.Exit(fmt.Sprintf("load %s: %v", c.String("url"), err), 1)
		}
		defer store.Close()

		return fn(c, store)
	}
}

// wait blocks on r for at most the request timeout.
func wait(c *cli.Context, r *notesync.Result) error {
	ctx, cancel := context.WithTimeout(c.Context, requestTimeout(c))
	defer cancel()

	if err := r.Wait(ctx); err != nil {
		return cli.Exit(fmt.Sprintf("save %s: %v", c.String("url"), err), 1)
	}
	return nil
}

// lookup resolves --page and --index to a note.
func lookup(c *cli.Context, store *notesync.Store) (model.Note, error) {
	page, idx := c.Int("page"), c.Int("index")

	n, ok := store.Note(page, idx)
	if !ok {
		return model.Note{}, cli.Exit(fmt.Sprintf("no note at page %d index %d", page, idx), 1)
	}
	return n, nil
}

// position returns the index of n within its page, or -1.
func position(store *notesync.Store, n model.Note) int {
	for i, m := range store.NotesForPage(n.PageIndex) {
		if m.ID == n.ID {
			return i
		}
	}
	return -1
}

func printNote(w io.Writer, idx int, n model.Note) {
	fmt.Fprintf(w, "%d\t%d\t%g\t%g\t%g\t%g\t%s\n", n.PageIndex, idx, n.X, n.Y, n.Width, n.Height, n.Text)
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "print the notes of the document, one per line",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "only list this page; all pages when negative",
				Value: -1,
			},
		},
		Action: withStore(func(c *cli.Context, store *notesync.Store) error {
			pages := store.Pages()
			if p := c.Int("page"); p >= 0 {
				if p >= len(pages) {
					return nil
				}
				pages = pages[p : p+1]
			}

			for _, page := range pages {
				for i, n := range page {
					printNote(c.App.Writer, i, n)
				}
			}
			return nil
		}),
	}
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "add a note and save the document",
		Flags: []cli.Flag{
			pageFlag,
			&cli.Float64Flag{Name: "x", Usage: "left edge"},
			&cli.Float64Flag{Name: "y", Usage: "top edge"},
			&cli.Float64Flag{Name: "width", Usage: "width", Value: 100},
			&cli.Float64Flag{Name: "height", Usage: "height", Value: 100},
			&cli.StringFlag{Name: "text", Usage: "note text"},
		},
		Action: withStore(func(c *cli.Context, store *notesync.Store) error {
			id, res := store.Add(model.Note{
				PageIndex: c.Int("page"),
				X:         c.Float64("x"),
				Y:         c.Float64("y"),
				Width:     c.Float64("width"),
				Height:    c.Float64("height"),
				Text:      c.String("text"),
			})
			if err := wait(c, res); err != nil {
				return err
			}

			if n, ok := store.Get(id); ok {
				printNote(c.App.Writer, position(store, n), n)
			}
			return nil
		}),
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "delete a note and save the document",
		Flags: []cli.Flag{pageFlag, indexFlag},
		Action: withStore(func(c *cli.Context, store *notesync.Store) error {
			n, err := lookup(c, store)
			if err != nil {
				return err
			}
			return wait(c, store.DeleteNote(n.ID))
		}),
	}
}

func setTextCommand() *cli.Command {
	return &cli.Command{
		Name:  "set-text",
		Usage: "replace the text of a note and save the document",
		Flags: []cli.Flag{
			pageFlag,
			indexFlag,
			&cli.StringFlag{Name: "text", Usage: "new note text", Required: true},
		},
		Action: withStore(func(c *cli.Context, store *notesync.Store) error {
			n, err := lookup(c, store)
			if err != nil {
				return err
			}
			if err := wait(c, store.SetNoteText(n.ID, c.String("text"))); err != nil {
				return err
			}

			if n, ok := store.Get(n.ID); ok {
				printNote(c.App.Writer, position(store, n), n)
			}
			return nil
		}),
	}
}

// navigateCommand prints the neighbour of the note at --page/--index. Without
// a position it prints the first (next) or last (prev) note.
func navigateCommand(name, usage string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "page", Usage: "page index of the current note", Value: -1},
			&cli.IntFlag{Name: "index", Usage: "position of the current note", Value: -1},
		},
		Action: withStore(func(c *cli.Context, store *notesync.Store) error {
			id := model.NilID
			if c.Int("page") >= 0 && c.Int("index") >= 0 {
				n, err := lookup(c, store)
				if err != nil {
					return err
				}
				id = n.ID
			}

			var (
				n  model.Note
				ok bool
			)
			if name == "next" {
				n, ok = store.NextNote(id)
			} else {
				n, ok = store.PreviousNote(id)
			}
			if !ok {
				return cli.Exit("document has no notes", 1)
			}

			printNote(c.App.Writer, position(store, n), n)
			return nil
		}),
	}
}

func flushCommand() *cli.Command {
	return &cli.Command{
		Name:  "flush",
		Usage: "save the document unchanged, retrying failed saves",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "retries", Usage: "retries after the first failed save", Value: 3},
		},
		Action: withStore(func(c *cli.Context, store *notesync.Store) error {
			ctx, cancel := context.WithTimeout(c.Context, requestTimeout(c)*time.Duration(c.Uint("retries")+1))
			defer cancel()

			b := backoff.WithContext(
				backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.Uint("retries"))),
				ctx,
			)

			err := backoff.Retry(func() error {
				err := store.Flush().Wait(ctx)
				if errors.Is(err, notesync.ErrClosed) {
					return backoff.Permanent(err)
				}
				return err
			}, b)
			if err != nil {
				return cli.Exit(fmt.Sprintf("flush %s: %v", c.String("url"), err), 1)
			}
			return nil
		}),
	}
}
