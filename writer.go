package xmltree

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteString renders d to a UTF-8 string using opts, falling back to
// d's own configured defaults (see SetWriteOptions) for anything not
// overridden.
func (d *Document) WriteString(opts ...WriteOption) (string, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write renders d to w as UTF-8 XML 1.0. Output encoding is always
// UTF-8 regardless of what encoding was recorded on parse or via
// WithEncodingName.
func (d *Document) Write(w io.Writer, opts ...WriteOption) error {
	wo := resolveWriteOptionsFrom(d.writeOpts, opts)

	bw := &boundedWriter{w: w}
	if wo.WriteDecl {
		writeDecl(bw, d)
	}

	root := d.arena.lookup(RootHandle)
	for i, child := range root.children {
		if wo.Indent && i > 0 {
			bw.writeByte('\n')
		}
		if err := writeNode(bw, d, child, 0, wo); err != nil {
			return err
		}
	}
	return bw.err
}

// WriteFile renders d and writes it to path, creating or truncating
// the file. The file is closed on every exit path.
func (d *Document) WriteFile(path string, opts ...WriteOption) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return wrapIO(err, "create "+path)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = wrapIO(cerr, "close "+path)
		}
	}()
	if err := d.Write(f, opts...); err != nil {
		return err
	}
	return nil
}

func writeDecl(w *boundedWriter, d *Document) {
	version := d.version
	if version == "" {
		version = "1.0"
	}
	w.writeString(`<?xml version="` + version + `"`)
	if d.encoding != "" {
		w.writeString(` encoding="` + d.encoding + `"`)
	}
	switch d.standalone {
	case StandaloneExplicitYes:
		w.writeString(` standalone="yes"`)
	case StandaloneExplicitNo:
		w.writeString(` standalone="no"`)
	}
	w.writeString("?>\n")
}

func writeNode(w *boundedWriter, d *Document, n Node, depth int, wo WriteOptions) error {
	switch n.Kind {
	case KindElement:
		return writeElement(w, d, Element{doc: d, h: n.Handle}, depth, wo)
	case KindText:
		return writeEscapedText(w, n.Data)
	case KindCDATA:
		if strings.Contains(n.Data, "]]>") {
			return ErrContainsCDATAEnd
		}
		w.writeString("<![CDATA[")
		w.writeString(n.Data)
		w.writeString("]]>")
		return w.err
	case KindComment:
		if strings.Contains(n.Data, "--") {
			return ErrCommentContainsDoubleHyphen
		}
		w.writeString("<!--")
		w.writeString(n.Data)
		w.writeString("-->")
		return w.err
	case KindPI:
		target, data := PITarget(n)
		w.writeString("<?")
		w.writeString(target)
		if data != "" {
			w.writeByte(' ')
			w.writeString(data)
		}
		w.writeString("?>")
		return w.err
	case KindDocType:
		w.writeString("<!DOCTYPE ")
		w.writeString(n.Data)
		w.writeByte('>')
		return w.err
	default:
		return fmt.Errorf("xmltree: unknown node kind %v", n.Kind)
	}
}

func writeElement(w *boundedWriter, d *Document, e Element, depth int, wo WriteOptions) error {
	r := e.rec()
	w.writeByte('<')
	w.writeString(r.fullName)
	for k, v := range r.attrs.Range() {
		if err := writeAttr(w, k, v, wo.AttrQuote); err != nil {
			return err
		}
	}

	if len(r.children) == 0 {
		w.writeString("/>")
		return w.err
	}
	w.writeByte('>')

	mixed := hasMixedContent(r.children)
	indentHere := wo.Indent && !mixed

	for _, c := range r.children {
		if indentHere {
			w.writeByte('\n')
			writeIndent(w, wo.IndentStr, depth+1)
		}
		if err := writeNode(w, d, c, depth+1, wo); err != nil {
			return err
		}
	}
	if indentHere {
		w.writeByte('\n')
		writeIndent(w, wo.IndentStr, depth)
	}
	w.writeString("</")
	w.writeString(r.fullName)
	w.writeByte('>')
	return w.err
}

func hasMixedContent(children []Node) bool {
	for _, c := range children {
		if c.Kind == KindText || c.Kind == KindCDATA {
			return true
		}
	}
	return false
}

func writeIndent(w *boundedWriter, indentStr string, depth int) {
	for i := 0; i < depth; i++ {
		w.writeString(indentStr)
	}
}

func writeAttr(w *boundedWriter, name, value string, preferred AttrQuote) error {
	q := chooseQuote(preferred, value)
	w.writeByte(' ')
	w.writeString(name)
	w.writeByte('=')
	w.writeByte(q)
	if err := writeEscapedAttr(w, value, q); err != nil {
		return err
	}
	w.writeByte(q)
	return w.err
}

// boundedWriter accumulates the first error from a sequence of writes
// so callers don't need to check every intermediate WriteString call.
type boundedWriter struct {
	w   io.Writer
	err error
}

func (b *boundedWriter) writeString(s string) {
	if b.err != nil {
		return
	}
	_, b.err = io.WriteString(b.w, s)
}

func (b *boundedWriter) writeByte(c byte) {
	if b.err != nil {
		return
	}
	_, b.err = b.w.Write([]byte{c})
}

func (b *boundedWriter) Write(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	n, err := b.w.Write(p)
	b.err = err
	return n, err
}
