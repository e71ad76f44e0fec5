package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// AssumeYesConfirmer approves every question without reading input.
// Used when --yes is given.
type AssumeYesConfirmer struct {
	output io.Writer
}

// NewAssumeYesConfirmer creates an AssumeYesConfirmer that echoes to stderr.
func NewAssumeYesConfirmer() *AssumeYesConfirmer {
	return NewAssumeYesConfirmerTo(os.Stderr)
}

// NewAssumeYesConfirmerTo creates an AssumeYesConfirmer that echoes to w.
func NewAssumeYesConfirmerTo(w io.Writer) *AssumeYesConfirmer {
	if w == nil {
		w = io.Discard
	}
	return &AssumeYesConfirmer{output: w}
}

// Confirm echoes the question and approves it unless ctx is already done.
func (a *AssumeYesConfirmer) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "%s Yes (--yes)\n", question)
	return true, nil
}

var _ mkdb.Confirmer = (*AssumeYesConfirmer)(nil)
