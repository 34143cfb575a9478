package index

import (
	"github.com/NVIDIA/implindex/pkg/header"
)

// PageView is the serialized form of one trait page.
type PageView struct {
	Trait   string  `json:"trait" yaml:"trait"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Document is the serialized form of the whole index.
type Document struct {
	header.Header `yaml:",inline"`
	Pages         []PageView `json:"pages" yaml:"pages"`
}

// TableColumns implements serializer.Tabular.
func (d *Document) TableColumns() []string {
	return []string{"TRAIT", "MODULE", "IMPLEMENTOR"}
}

// TableRows implements serializer.Tabular.
func (d *Document) TableRows() [][]string {
	var rows [][]string
	for _, p := range d.Pages {
		rows = append(rows, p.rows()...)
	}
	return rows
}

// PageDocument is the serialized form of a single page.
type PageDocument struct {
	header.Header `yaml:",inline"`
	PageView      `yaml:",inline"`
}

// TableColumns implements serializer.Tabular.
func (d *PageDocument) TableColumns() []string {
	return []string{"TRAIT", "MODULE", "IMPLEMENTOR"}
}

// TableRows implements serializer.Tabular.
func (d *PageDocument) TableRows() [][]string {
	return d.rows()
}

func (p PageView) rows() [][]string {
	var rows [][]string
	for _, e := range p.Entries {
		for _, r := range e.Implementors {
			rows = append(rows, []string{p.Trait, e.Module, string(r)})
		}
	}
	return rows
}
