package vso

import (
	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
)

// Factory creates the empty query blocks the walker fills in.
type Factory interface {
	QueryBlock() (attr.Record, error)
}

// BlockFactory creates blocks with the groups of a VSO QueryRequestBlock.
type BlockFactory struct{}

func (BlockFactory) QueryBlock() (attr.Record, error) {
	return NewQueryBlock(), nil
}

func NewQueryBlock() attr.Record {
	return attr.Record{
		"time":   attr.Record{},
		"wave":   attr.Record{},
		"extent": attr.Record{},
		"field":  attr.Record{},
	}
}

// NewWalker returns a walker producing one query block per AND-clause.
// A nil Factory falls back to BlockFactory.
func NewWalker() *attr.Walker[Factory, attr.Record] {
	w := attr.NewWalker[Factory, attr.Record]()
	attr.RegisterDefaults(w, func(f Factory) (attr.Record, error) {
		if f == nil {
			f = BlockFactory{}
		}
		return f.QueryBlock()
	})
	w.AddValueConverter(Kinds()...)
	return w
}

// Blocks walks tree with a fresh walker and the default factory.
func Blocks(tree attr.Attr) ([]attr.Record, error) {
	return NewWalker().Create(tree, BlockFactory{})
}
