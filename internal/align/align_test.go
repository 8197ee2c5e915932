package align_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nicolagi/iddiff/internal/align"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loremIpsum = []string{
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit,",
	"sed do eiusmod tempor incididunt ut labore et dolore magna",
	"aliqua. Ut enim ad minim veniam, quis nostrud exercitation",
	"ullamco laboris nisi ut aliquip ex ea commodo consequat.",
}

func kinds(rows []align.Row) []align.Kind {
	var kk []align.Kind
	for _, row := range rows {
		kk = append(kk, row.Kind)
	}
	return kk
}

func spanned(line *align.Line) []string {
	if line == nil {
		return nil
	}
	var ss []string
	for _, s := range line.Spans {
		ss = append(ss, line.Text[s.Start:s.End])
	}
	return ss
}

func numbered(n int) []string {
	var lines []string
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	return lines
}

func TestAlignHighlightsDeletedWord(t *testing.T) {
	left := []string{"Lorem ipsum dolor sit amet,", "sed do eiusmod tempor incididunt"}
	right := []string{"Lorem ipsum dolor sit amet,", "sed do eiusmod incididunt"}
	rows := align.Align(left, right, align.NoContext)
	want := []align.Row{
		{
			Kind:  align.Unchanged,
			Left:  &align.Line{Number: 1, Text: left[0]},
			Right: &align.Line{Number: 1, Text: right[0]},
		},
		{
			Kind:  align.Changed,
			Left:  &align.Line{Number: 2, Text: left[1], Spans: []align.Span{{Start: 14, End: 21}}},
			Right: &align.Line{Number: 2, Text: right[1]},
		},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("unexpected rows (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{" tempor"}, spanned(rows[1].Left))
}

func TestAlignHighlightsInsertedCharacter(t *testing.T) {
	right := []string{
		loremIpsum[0],
		loremIpsum[1],
		"aliqua. Ut enim add minim veniam, quis nostrud exercitation",
		loremIpsum[3],
	}
	rows := align.Align(loremIpsum, right, align.NoContext)
	require.Equal(t, []align.Kind{align.Unchanged, align.Unchanged, align.Changed, align.Unchanged}, kinds(rows))
	assert.Empty(t, rows[2].Left.Spans)
	assert.Equal(t, []string{"d"}, spanned(rows[2].Right))
}

func TestAlignIdenticalDocuments(t *testing.T) {
	rows := align.Align(loremIpsum, loremIpsum, align.NoContext)
	require.Len(t, rows, len(loremIpsum))
	for i, row := range rows {
		assert.Equal(t, align.Unchanged, row.Kind)
		assert.Equal(t, loremIpsum[i], row.Left.Text)
		assert.Equal(t, loremIpsum[i], row.Right.Text)
		assert.Equal(t, i+1, row.Left.Number)
	}
	for _, context := range []int{0, 1, 3, 8} {
		stats := align.Summarize(align.Align(loremIpsum, loremIpsum, context))
		assert.Zero(t, stats.Changed+stats.Deleted+stats.Inserted)
	}
}

func TestAlignEmptyInputs(t *testing.T) {
	assert.Empty(t, align.Align(nil, nil, align.NoContext))
	assert.Empty(t, align.Align(nil, nil, 3))

	rows := align.Align(nil, loremIpsum, align.NoContext)
	require.Len(t, rows, len(loremIpsum))
	for i, row := range rows {
		assert.Equal(t, align.Changed, row.Kind)
		assert.Nil(t, row.Left)
		assert.Equal(t, []string{loremIpsum[i]}, spanned(row.Right))
	}

	rows = align.Align(loremIpsum, nil, align.NoContext)
	require.Len(t, rows, len(loremIpsum))
	for _, row := range rows {
		assert.Equal(t, align.Changed, row.Kind)
		assert.Nil(t, row.Right)
	}
}

func TestAlignInsertedLine(t *testing.T) {
	right := append([]string{}, loremIpsum[:2]...)
	right = append(right, "An entirely new line.")
	right = append(right, loremIpsum[2:]...)
	rows := align.Align(loremIpsum, right, align.NoContext)
	require.Equal(t, []align.Kind{align.Unchanged, align.Unchanged, align.Changed, align.Unchanged, align.Unchanged}, kinds(rows))
	assert.Nil(t, rows[2].Left)
	assert.Equal(t, 3, rows[2].Right.Number)
	assert.Equal(t, []string{"An entirely new line."}, spanned(rows[2].Right))
	assert.Equal(t, loremIpsum[2], rows[3].Left.Text)
	assert.Equal(t, 4, rows[3].Right.Number)
}

func TestAlignSuppressesWhitespaceOnlyChanges(t *testing.T) {
	left := []string{"alpha", "beta  gamma", "delta", "   ", "omega"}
	right := []string{"alpha", "beta gamma", "delta", "", "omega"}
	rows := align.Align(left, right, align.NoContext)
	assert.Equal(t, []align.Kind{align.Unchanged, align.Unchanged, align.Unchanged}, kinds(rows))
	for _, row := range rows {
		assert.NotEqual(t, align.Changed, row.Kind)
	}
}

func TestAlignIgnoresLineTerminators(t *testing.T) {
	rows := align.Align([]string{"one\n", "two\n"}, []string{"one\n", "too\n", "three\n"}, align.NoContext)
	require.Equal(t, []align.Kind{align.Unchanged, align.Changed, align.Changed}, kinds(rows))
	assert.Equal(t, []string{"w"}, spanned(rows[1].Left))
	assert.Equal(t, []string{"o"}, spanned(rows[1].Right))
	assert.Equal(t, []string{"three"}, spanned(rows[2].Right))
}

func TestAlignContextGaps(t *testing.T) {
	t.Run("leading run keeps both ends", func(t *testing.T) {
		rows := align.Align(loremIpsum, loremIpsum[:3], 1)
		assert.Equal(t, []align.Kind{align.Unchanged, align.ContextGap, align.Unchanged, align.Changed}, kinds(rows))
		assert.Equal(t, loremIpsum[0], rows[0].Left.Text)
		assert.Equal(t, 0, rows[1].Gap)
		assert.Equal(t, loremIpsum[2], rows[2].Left.Text)
	})
	t.Run("edge runs", func(t *testing.T) {
		left := []string{"a", "b", "c", "d", "e", "x"}
		right := []string{"a", "b", "c", "d", "e", "y"}
		rows := align.Align(left, right, 1)
		assert.Equal(t, []align.Kind{align.Unchanged, align.ContextGap, align.Unchanged, align.Changed}, kinds(rows))
		assert.Equal(t, "a", rows[0].Left.Text)
		assert.Equal(t, "e", rows[2].Left.Text)

		rows = align.Align(right[5:], right[5:], 1)
		assert.Equal(t, []align.Kind{align.Unchanged}, kinds(rows))

		left = []string{"x", "a", "b", "c", "d", "e"}
		right = []string{"y", "a", "b", "c", "d", "e"}
		rows = align.Align(left, right, 1)
		assert.Equal(t, []align.Kind{align.Changed, align.Unchanged, align.ContextGap, align.Unchanged}, kinds(rows))
		assert.Equal(t, "a", rows[1].Left.Text)
		assert.Equal(t, "e", rows[3].Left.Text)
	})
	t.Run("unchanged document keeps both ends", func(t *testing.T) {
		lines := []string{"a", "b", "c", "d", "e"}
		rows := align.Align(lines, lines, 1)
		assert.Equal(t, []align.Kind{align.Unchanged, align.ContextGap, align.Unchanged}, kinds(rows))
		assert.Equal(t, "a", rows[0].Left.Text)
		assert.Equal(t, "e", rows[2].Right.Text)
	})
	t.Run("interior run keeps both ends", func(t *testing.T) {
		left := numbered(20)
		right := numbered(20)
		left[1] = "first change"
		left[18] = "second change"
		rows := align.Align(left, right, 2)
		want := []align.Kind{
			align.Unchanged,
			align.Changed,
			align.Unchanged, align.Unchanged,
			align.ContextGap,
			align.Unchanged, align.Unchanged,
			align.Changed,
			align.Unchanged,
		}
		assert.Equal(t, want, kinds(rows))
		assert.Equal(t, "line 2", rows[2].Left.Text)
		assert.Equal(t, "line 17", rows[6].Left.Text)
	})
	t.Run("gaps are numbered in order", func(t *testing.T) {
		left := numbered(30)
		right := numbered(30)
		left[10] = "first change"
		left[20] = "second change"
		rows := align.Align(left, right, 1)
		var gaps []int
		for _, row := range rows {
			if row.Kind == align.ContextGap {
				gaps = append(gaps, row.Gap)
			}
		}
		assert.Equal(t, []int{0, 1, 2}, gaps)
		last := rows[len(rows)-1]
		assert.Equal(t, align.Unchanged, last.Kind)
		assert.Equal(t, "line 29", last.Left.Text)
	})
	t.Run("short runs are kept whole", func(t *testing.T) {
		left := numbered(5)
		right := numbered(5)
		left[0] = "first change"
		left[4] = "second change"
		rows := align.Align(left, right, 2)
		assert.Equal(t, []align.Kind{align.Changed, align.Unchanged, align.Unchanged, align.Unchanged, align.Changed}, kinds(rows))
	})
	t.Run("no context means no gaps", func(t *testing.T) {
		left := numbered(100)
		right := numbered(100)
		right[50] = "a change"
		for _, row := range align.Align(left, right, align.NoContext) {
			assert.NotEqual(t, align.ContextGap, row.Kind)
		}
	})
	t.Run("zero context keeps changes only", func(t *testing.T) {
		left := numbered(10)
		right := numbered(10)
		right[5] = "a change"
		rows := align.Align(left, right, 0)
		assert.Equal(t, []align.Kind{align.ContextGap, align.Changed, align.ContextGap}, kinds(rows))
	})
}

func TestAlignHighlightsInvalidUTF8(t *testing.T) {
	rows := align.Align([]string{"same", "caf\xe9"}, []string{"same", "caf\xe8"}, align.NoContext)
	require.Equal(t, []align.Kind{align.Unchanged, align.Changed}, kinds(rows))
	assert.Equal(t, []string{"\xe9"}, spanned(rows[1].Left))
	assert.Equal(t, []string{"\xe8"}, spanned(rows[1].Right))
}

func TestAlignIsDeterministic(t *testing.T) {
	left := []string{"a", "b", "a", "b", "c", "a"}
	right := []string{"b", "a", "c", "a", "b", "a"}
	first := align.Align(left, right, align.NoContext)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, align.Align(left, right, align.NoContext)); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestSummarize(t *testing.T) {
	left := []string{"same", "old", "gone", "same again"}
	right := []string{"same", "new", "same again", "added"}
	stats := align.Summarize(align.Align(left, right, align.NoContext))
	assert.Equal(t, align.Stats{Unchanged: 2, Changed: 1, Deleted: 1, Inserted: 1}, stats)
}
