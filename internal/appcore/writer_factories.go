package appcore

import (
	"iseq/internal/engine"
	"iseq/internal/profile"
	"iseq/internal/runutil"
	"iseq/internal/writers"
)

// WriterFactory starts the hit writer of a run.
type WriterFactory interface {
	// NeedDecode reports whether hits must carry codons and amino acids.
	NeedDecode(kind profile.Kind) bool
	Start(s writers.Sinks, bufSize int) (chan<- engine.Hit, <-chan error, error)
}

type HitWriterFactory struct {
	Format string
	Prefix string
	Header bool
	OCodon string
	OAmino string
}

func NewHitWriterFactory(format, prefix string, header bool, ocodon, oamino string) HitWriterFactory {
	return HitWriterFactory{
		Format: format,
		Prefix: prefix,
		Header: header,
		OCodon: ocodon,
		OAmino: oamino,
	}
}

func (w HitWriterFactory) NeedDecode(kind profile.Kind) bool {
	return runutil.ComputeDecode(kind, w.OCodon, w.OAmino, w.Format)
}

func (w HitWriterFactory) Start(s writers.Sinks, bufSize int) (chan<- engine.Hit, <-chan error, error) {
	s.Prefix = w.Prefix
	s.Header = w.Header
	return writers.StartHitWriter(w.Format, s, bufSize)
}
