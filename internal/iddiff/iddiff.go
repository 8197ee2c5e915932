// Package iddiff compares two revisions of an Internet-Draft: it loads both,
// drops their pagination artifacts, aligns them and renders the result.
package iddiff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nicolagi/iddiff/internal/align"
	"github.com/nicolagi/iddiff/internal/filter"
	"github.com/nicolagi/iddiff/internal/render"
	"github.com/nicolagi/iddiff/internal/storage"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrUsage is wrapped by errors due to invalid options.
var ErrUsage = errors.New("invalid usage")

// Unified diffs get this many context lines unless asked otherwise.
const defaultUnifiedContext = 3

type Options struct {
	Mode Mode

	// Number of unchanged lines to keep around changes, for the side-by-side
	// and unified modes. Zero keeps all unchanged lines in the side-by-side
	// mode and means the default of 3 lines in the unified mode.
	Context int

	// Write only the HTML table, not a whole page. Side-by-side mode only.
	TableOnly bool

	// Collapse runs of blank lines.
	SkipWhitespace bool
}

func (o Options) validate() error {
	if o.Context < 0 {
		return fmt.Errorf("context lines: %d is negative: %w", o.Context, ErrUsage)
	}
	if o.TableOnly && o.Mode != SideBySide {
		return fmt.Errorf("table only applies to %v, not %v: %w", SideBySide, o.Mode, ErrUsage)
	}
	if o.Mode < 0 || int(o.Mode) >= len(modeNames) {
		return fmt.Errorf("%v: %w", o.Mode, ErrUsage)
	}
	return nil
}

// Diff writes to w the differences between the documents named name1 and
// name2, read from store. Errors reading the documents are returned as they
// are; if both documents fail to load, the error for the first one wins.
func Diff(ctx context.Context, w io.Writer, store storage.Store, name1, name2 string, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	docs, err := load(ctx, store, opts.SkipWhitespace, name1, name2)
	if err != nil {
		return err
	}
	left, right := docs[0], docs[1]
	switch opts.Mode {
	case SideBySide:
		n := align.NoContext
		if opts.Context > 0 {
			n = opts.Context
		}
		rows := align.Align(left, right, n)
		logStats(rows)
		var table bytes.Buffer
		if err := render.Table(&table, name1, name2, rows); err != nil {
			return err
		}
		if opts.TableOnly {
			_, err := table.WriteTo(w)
			return err
		}
		return render.Page(w, render.Title(name1, name2), table.String())
	case HWDiff:
		var pre bytes.Buffer
		if err := render.HWDiff(&pre, join(left), join(right)); err != nil {
			return err
		}
		return render.Page(w, render.Title(name1, name2), pre.String())
	case WDiff:
		return render.WDiff(w, join(left), join(right))
	case ChangeBars:
		rows := align.Align(left, right, align.NoContext)
		logStats(rows)
		return render.ChangeBars(w, rows)
	case ABDiff:
		rows := align.Align(left, right, align.NoContext)
		logStats(rows)
		return render.ABDiff(w, rows)
	case Unified:
		n := opts.Context
		if n == 0 {
			n = defaultUnifiedContext
		}
		return render.Unified(w, name1, name2, join(left), join(right), n)
	}
	return nil
}

// load reads, splits and filters both documents concurrently.
func load(ctx context.Context, store storage.Store, skipWhitespace bool, names ...string) ([][]string, error) {
	docs := make([][]string, len(names))
	errs := make([]error, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			b, err := store.Get(ctx, storage.Key(name))
			if err != nil {
				errs[i] = err
				return err
			}
			lines := SplitLines(string(b))
			docs[i] = filter.Filter(lines, skipWhitespace)
			log.WithFields(log.Fields{
				"name":  name,
				"bytes": len(b),
				"lines": len(lines),
				"kept":  len(docs[i]),
			}).Debug("Loaded document")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// The first failure may have caused the others, by cancellation.
		for _, err := range errs {
			if err != nil && !errors.Is(err, context.Canceled) {
				return nil, err
			}
		}
		return nil, err
	}
	return docs, nil
}

// SplitLines splits text after each newline. Windows line endings are
// converted to newlines. The last line lacks a newline if text does.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// join is the inverse of SplitLines, except that lines without a newline,
// like the collapsed blank lines, get one.
func join(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func logStats(rows []align.Row) {
	s := align.Summarize(rows)
	log.WithFields(log.Fields{
		"unchanged": s.Unchanged,
		"changed":   s.Changed,
		"deleted":   s.Deleted,
		"inserted":  s.Inserted,
		"gaps":      s.Gaps,
	}).Debug("Aligned documents")
}
