package svgdoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// bakedMarker is the namespaced attribute value identifying a bake
// envelope. The debake scan keys on it.
const bakedMarker = "embedded"

// Baked is a piece of embedded vector content recovered from an exported
// file.
type Baked struct {
	ID     string // originating node ID, if recorded
	Markup string // the original embedded markup, byte-identical
}

// TransformString builds the single SVG transform attribute carried by a
// bake envelope from a node's offset, rotation and scale. Identity
// components are omitted; a fully identity transform yields "".
func TransformString(offsetX, offsetY, rotation, scaleX, scaleY float64) string {
	var parts []string
	if offsetX != 0 || offsetY != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s %s)", trimFloat(offsetX), trimFloat(offsetY)))
	}
	if rotation != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%s)", trimFloat(rotation)))
	}
	if scaleX != 1 || scaleY != 1 {
		parts = append(parts, fmt.Sprintf("scale(%s %s)", trimFloat(scaleX), trimFloat(scaleY)))
	}
	return strings.Join(parts, " ")
}

// Bake wraps embedded markup in a transform envelope: a <g> element
// tagged with the private namespace, carrying the node transform as a
// single transform attribute. The payload is emitted exactly once, with
// no surrounding whitespace, so [Debake] recovers it byte-identically.
func Bake(id, markup string, transform string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<g %s:content=%q %s:id=%q`, NamespacePrefix, bakedMarker, NamespacePrefix, id)
	if transform != "" {
		fmt.Fprintf(&b, ` transform=%q`, transform)
	}
	b.WriteString(">")
	b.WriteString(markup)
	b.WriteString("</g>")
	return b.String()
}

// Debake scans exported SVG for namespace-tagged bake envelopes and
// extracts each payload with the wrapper transform stripped. Content
// comes back byte-identical to what [Bake] wrapped: the scan slices the
// raw input between the envelope's tags instead of re-serializing
// through a DOM.
func Debake(data []byte) ([]Baked, error) {
	var out []Baked
	dec := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scan svg: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "g" || !isBakeEnvelope(se) {
			continue
		}

		id := envelopeID(se)
		payloadStart := dec.InputOffset()

		inner, err := rawInner(dec, data, payloadStart)
		if err != nil {
			return nil, err
		}
		out = append(out, Baked{ID: id, Markup: string(inner)})
	}
	return out, nil
}

// rawInner consumes tokens until the envelope's matching end tag and
// returns the raw bytes between the start tag and that end tag.
func rawInner(dec *xml.Decoder, data []byte, start int64) ([]byte, error) {
	depth := 1
	for {
		before := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("unterminated bake envelope: %w", err)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				return data[start:before], nil
			}
		}
	}
}

// isBakeEnvelope reports whether the element carries the namespaced
// content marker. The decoder resolves the prefix to the namespace URI
// when the export declared it; the raw prefix is accepted for fragments
// scanned without the root declaration.
func isBakeEnvelope(se xml.StartElement) bool {
	for _, a := range se.Attr {
		if a.Name.Local != "content" {
			continue
		}
		if a.Name.Space == Namespace || a.Name.Space == NamespacePrefix {
			return a.Value == bakedMarker
		}
	}
	return false
}

func envelopeID(se xml.StartElement) string {
	for _, a := range se.Attr {
		if a.Name.Local == "id" && (a.Name.Space == Namespace || a.Name.Space == NamespacePrefix) {
			return a.Value
		}
	}
	return ""
}
