package target

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// mapping is one (generated position, original position) correspondence,
// recorded by emitter.mark at each statement-initial position.
type mapping struct {
	genLine, genCol int
	srcLine, srcCol int
}

// sourceMapBuilder accumulates mappings for a single generated file and
// renders them into a standard source-map v3 document. Mappings must be
// added in non-decreasing (genLine, genCol) order, which emission already
// guarantees by construction (statements are visited in source order).
type sourceMapBuilder struct {
	file    string
	source  string
	entries []mapping
}

func newSourceMapBuilder(file, source string) *sourceMapBuilder {
	return &sourceMapBuilder{file: file, source: source}
}

func (b *sourceMapBuilder) add(genLine, genCol, srcLine, srcCol int) {
	b.entries = append(b.entries, mapping{genLine: genLine, genCol: genCol, srcLine: srcLine, srcCol: srcCol})
}

// json renders the accumulated mappings as source-map v3 JSON. Only one
// source file is ever recorded by this emitter (the single compilation
// unit passed to EmitProgram), so the "sources"/"names" arrays are
// always length-1/0 and every segment's source-index field is 0.
func (b *sourceMapBuilder) json() string {
	maxLine := 1
	for _, m := range b.entries {
		if m.genLine > maxLine {
			maxLine = m.genLine
		}
	}
	lines := make([][]string, maxLine+1) // 1-indexed
	prevGenCol, prevSrcLine, prevSrcCol := 0, 0, 0
	curLine := 0
	for _, m := range b.entries {
		if m.genLine != curLine {
			curLine = m.genLine
			prevGenCol = 0
		}
		seg := encodeVLQ(m.genCol-prevGenCol) +
			encodeVLQ(0) + // source index delta (always source 0)
			encodeVLQ(m.srcLine-1-prevSrcLine) +
			encodeVLQ(m.srcCol - prevSrcCol)
		lines[m.genLine] = append(lines[m.genLine], seg)
		prevGenCol = m.genCol
		prevSrcLine = m.srcLine - 1
		prevSrcCol = m.srcCol
	}
	lineStrs := make([]string, 0, maxLine)
	for i := 1; i <= maxLine; i++ {
		lineStrs = append(lineStrs, strings.Join(lines[i], ","))
	}
	var mappingsStr strings.Builder
	mappingsStr.WriteString(strings.Join(lineStrs, ";"))

	doc := struct {
		Version    int      `json:"version"`
		File       string   `json:"file,omitempty"`
		Sources    []string `json:"sources"`
		Names      []string `json:"names"`
		Mappings   string   `json:"mappings"`
		SourceRoot string   `json:"sourceRoot,omitempty"`
	}{
		Version:  3,
		File:     b.file,
		Sources:  []string{b.source},
		Names:    []string{},
		Mappings: mappingsStr.String(),
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// footer renders the //# sourceMappingURL=... comment for mode, or ""
// for SourceMapNone.
func footer(mode SourceMapMode, mapJSON, outFile string) string {
	switch mode {
	case SourceMapInline:
		encoded := base64.StdEncoding.EncodeToString([]byte(mapJSON))
		return fmt.Sprintf("//# sourceMappingURL=data:application/json;base64,%s\n", encoded)
	case SourceMapExternal:
		return fmt.Sprintf("//# sourceMappingURL=%s.map\n", outFile)
	default:
		return ""
	}
}

const base64VLQChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func encodeVLQ(n int) string {
	v := n << 1
	if n < 0 {
		v = (-n << 1) | 1
	}
	var sb strings.Builder
	for {
		digit := v & 0x1f
		v >>= 5
		if v > 0 {
			digit |= 0x20
		}
		sb.WriteByte(base64VLQChars[digit])
		if v == 0 {
			break
		}
	}
	return sb.String()
}
