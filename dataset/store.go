package dataset

import (
	"context"
)

/*
Loader is an interface for objects that load the root partition
of a dataset given its identifier.
*/
type Loader interface {
	Load(ctx context.Context, id string) (*Partition, error)
}

/*
LoaderFunc wraps a function with the Load method signature to implement
the Loader interface
*/
type LoaderFunc func(ctx context.Context, id string) (*Partition, error)

// Load invokes the LoaderFunc with the given parameters.
func (lf LoaderFunc) Load(ctx context.Context, id string) (*Partition, error) {
	return lf(ctx, id)
}

/*
Writer is an interface for objects that persist partitions, so that the
rows of every node of a tree can be inspected after growing it.
WritePartition must store the columns returned by the partition's Columns
method for all its rows, identified by the partition label.
*/
type Writer interface {
	WritePartition(ctx context.Context, p *Partition) error
}

/*
MultiWriter is a Writer that writes partitions on all the writers it holds
in order, stopping at the first error.
*/
type MultiWriter []Writer

// WritePartition writes the partition on every writer of the MultiWriter.
func (mw MultiWriter) WritePartition(ctx context.Context, p *Partition) error {
	for _, w := range mw {
		if err := w.WritePartition(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

type discard struct{}

// Discard is a Writer that does not persist partitions.
var Discard Writer = discard{}

func (discard) WritePartition(context.Context, *Partition) error {
	return nil
}

/*
MemoryWriter is a Writer that keeps the written partitions in
memory by label, in the order they were written.
*/
type MemoryWriter struct {
	Labels     []string
	Partitions map[string]*Partition
}

// NewMemoryWriter returns an empty MemoryWriter
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{Partitions: make(map[string]*Partition)}
}

// WritePartition keeps the given partition on the MemoryWriter
func (mw *MemoryWriter) WritePartition(ctx context.Context, p *Partition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mw.Labels = append(mw.Labels, p.Label)
	mw.Partitions[p.Label] = p
	return nil
}
