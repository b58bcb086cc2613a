// Package xmlwriter provides the minimal start/end/text-element primitives
// spec.md calls for in place of a DOM: a single-pass streaming emitter with
// no tree, no parent pointers, no inheritance hierarchy. It is the one
// piece of the out-of-scope description writer this module owns; callers
// outside this module build full DDD/SCPD documents on top of it.
package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Writer wraps an encoding/xml.Encoder token stream behind the three
// primitives spec.md's design notes ask for: start, text, end. There is no
// node graph and no back-pointers.
type Writer struct {
	buf  *bytes.Buffer
	enc  *xml.Encoder
	open []xml.Name
}

// New returns a Writer with an empty buffer.
func New() *Writer {
	buf := &bytes.Buffer{}
	return &Writer{buf: buf, enc: xml.NewEncoder(buf)}
}

// StartElement opens a plain, unqualified element.
func (w *Writer) StartElement(name string) error {
	return w.start(xml.StartElement{Name: xml.Name{Local: name}})
}

// StartNSElement opens an element qualified by an XML namespace.
func (w *Writer) StartNSElement(space, name string) error {
	return w.start(xml.StartElement{Name: xml.Name{Space: space, Local: name}})
}

func (w *Writer) start(se xml.StartElement) error {
	if err := w.enc.EncodeToken(se); err != nil {
		return err
	}
	w.open = append(w.open, se.Name)
	return nil
}

// Attr is a single attribute name/value pair for StartElementWith.
type Attr struct {
	Name  string
	Value string
}

// StartElementWith opens an element carrying the given attributes, in order.
func (w *Writer) StartElementWith(name string, attrs ...Attr) error {
	xmlAttrs := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		xmlAttrs = append(xmlAttrs, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	return w.start(xml.StartElement{Name: xml.Name{Local: name}, Attr: xmlAttrs})
}

// TextElement writes a complete element with character-data content:
// <name>text</name>.
func (w *Writer) TextElement(name, text string) error {
	if err := w.StartElement(name); err != nil {
		return err
	}
	if err := w.enc.EncodeToken(xml.CharData([]byte(text))); err != nil {
		return err
	}
	return w.EndElement(name)
}

// EndElement closes the most recently opened element with the given name.
func (w *Writer) EndElement(name string) error {
	end := xml.Name{Local: name}
	if n := len(w.open); n > 0 && w.open[n-1].Local == name {
		end = w.open[n-1]
		w.open = w.open[:n-1]
	}
	return w.enc.EncodeToken(xml.EndElement{Name: end})
}

// Flush finalizes pending tokens and returns the accumulated bytes.
func (w *Writer) Flush() ([]byte, error) {
	if err := w.enc.Flush(); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

// WriteSpecVersion emits the <specVersion><major>M</major><minor>m</minor></specVersion>
// block every UDA description document carries, the sole concrete document
// fragment this module is responsible for per spec.md §1.
func WriteSpecVersion(w *Writer, major, minor int) error {
	if err := w.StartElement("specVersion"); err != nil {
		return err
	}
	if err := w.TextElement("major", fmt.Sprintf("%d", major)); err != nil {
		return err
	}
	if err := w.TextElement("minor", fmt.Sprintf("%d", minor)); err != nil {
		return err
	}
	return w.EndElement("specVersion")
}
