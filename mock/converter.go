package mock

import "github.com/fwojciec/docdb"

var _ docdb.Converter = (*Converter)(nil)

// Converter is a mock implementation of docdb.Converter.
type Converter struct {
	ConvertFn func(pageURL, html string) (string, error)
}

func (c *Converter) Convert(pageURL, html string) (string, error) {
	return c.ConvertFn(pageURL, html)
}
