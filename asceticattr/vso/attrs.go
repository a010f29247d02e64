// Package vso defines the attributes of Virtual Solar Observatory searches
// and the walker turning attr trees into VSO query blocks.
package vso

import (
	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
)

const (
	KindProvider   attr.Kind = "Provider"
	KindSource     attr.Kind = "Source"
	KindInstrument attr.Kind = "Instrument"
	KindPhysobs    attr.Kind = "Physobs"
	KindLevel      attr.Kind = "Level"
	KindSample     attr.Kind = "Sample"
	KindQuicklook  attr.Kind = "Quicklook"
	KindDetector   attr.Kind = "Detector"
	KindFilter     attr.Kind = "Filter"
	KindResolution attr.Kind = "Resolution"
	KindPixels     attr.Kind = "Pixels"
	KindExtent     attr.Kind = "Extent"
	KindTime       attr.Kind = "Time"
	KindWave       attr.Kind = "Wave"
)

func simpleKinds() []attr.Kind {
	return []attr.Kind{
		KindProvider, KindSource, KindInstrument, KindPhysobs, KindLevel, KindSample,
		KindQuicklook, KindDetector, KindFilter, KindResolution, KindPixels,
	}
}

// Kinds lists every leaf kind the VSO walker handles.
func Kinds() []attr.Kind {
	return append(simpleKinds(), KindExtent, KindTime, KindWave)
}

func Provider(v string) attr.SimpleAttr {
	return attr.NewSimpleAttr(KindProvider, v)
}

func Source(v string) attr.SimpleAttr {
	return attr.NewSimpleAttr(KindSource, v)
}

func Instrument(v string) attr.SimpleAttr {
	return attr.NewSimpleAttr(KindInstrument, v)
}

func Physobs(v string) attr.SimpleAttr {
	return attr.NewSimpleAttr(KindPhysobs, v)
}

// Level is the data processing level. Ranges such as "1-2" are passed as strings.
func Level(v any) attr.SimpleAttr {
	return attr.NewSimpleAttr(KindLevel, v)
}

// Sample is the cadence in seconds.
func Sample(seconds float64) attr.SimpleAttr {
	return attr.NewSimpleAttr(KindSample, seconds)
}

// Quicklook is sent to the service as 1 or 0.
func Quicklook(on bool) attr.SimpleAttr {
	v := 0
	if on {
		v = 1
	}
	return attr.NewSimpleAttr(KindQuicklook, v)
}

func Detector(v string) attr.SimpleAttr {
	return attr.NewSimpleAttr(KindDetector, v)
}

func Filter(v string) attr.SimpleAttr {
	return attr.NewSimpleAttr(KindFilter, v)
}

func Resolution(v float64) attr.SimpleAttr {
	return attr.NewSimpleAttr(KindResolution, v)
}

func Pixels(v int) attr.SimpleAttr {
	return attr.NewSimpleAttr(KindPixels, v)
}

// Extent is the spatial extent of an observation.
func Extent(x, y, width, length float64, typ string) attr.ComplexAttr {
	return attr.NewComplexAttr(KindExtent, map[string]any{
		"x":      x,
		"y":      y,
		"width":  width,
		"length": length,
		"type":   typ,
	})
}

// Field asks the service to return fielditem in the results.
func Field(fielditem string) attr.ValueAttr {
	return attr.NewValueAttr(attr.Entry{Path: attr.Path{"field", "fielditem"}, Value: fielditem})
}
