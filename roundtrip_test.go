package toon

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

// Fragments that exercise quoting: delimiters, structural characters, escapes,
// keywords, numerals and multi-byte runes.
var textFragments = []string{
	"a", "Z", "é", "中", " ", "  ", ",", "|", "\t", ":", "-", "- ", `"`, `\`, `\n`,
	"\n", "\r", "\x01", "0", "007", "7", "1.5", "e", "+", "[", "]", "{", "}", "#",
	"true", "null", "x y",
}

type valueGen struct {
	r *rand.Rand
}

func (g valueGen) text() string {
	n := g.r.Intn(5)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(textFragments[g.r.Intn(len(textFragments))])
	}
	return b.String()
}

func (g valueGen) primitive() Value {
	switch g.r.Intn(9) {
	case 0:
		return Null{}
	case 1:
		return Bool(g.r.Intn(2) == 0)
	case 2:
		return Int(g.r.Int63() - g.r.Int63())
	case 3:
		return Int(g.r.Intn(200) - 100)
	case 4:
		return Float(g.r.NormFloat64() * 1e3)
	case 5:
		return Float(math.Pow(10, float64(g.r.Intn(60)-30)) * (1 + g.r.Float64()))
	case 6:
		specials := []float64{0, math.Copysign(0, -1), math.NaN(), math.Inf(1), 2, -0.5}
		return Float(specials[g.r.Intn(len(specials))])
	default:
		return String(g.text())
	}
}

func (g valueGen) keys(n int) []string {
	seen := make(map[string]bool, n)
	keys := make([]string, 0, n)
	for len(keys) < n {
		k := g.text()
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

func (g valueGen) object(depth int) Object {
	keys := g.keys(g.r.Intn(4))
	obj := make(Object, len(keys))
	for i, k := range keys {
		obj[i] = Member{Key: k, Value: g.value(depth + 1)}
	}
	return obj
}

func (g valueGen) array(depth int) Array {
	n := g.r.Intn(4)
	arr := make(Array, n)
	switch g.r.Intn(3) {
	case 0:
		for i := range arr {
			arr[i] = g.primitive()
		}
	case 1:
		fields := g.keys(1 + g.r.Intn(3))
		for i := range arr {
			row := make(Object, len(fields))
			for j, f := range fields {
				row[j] = Member{Key: f, Value: g.primitive()}
			}
			arr[i] = row
		}
	default:
		for i := range arr {
			arr[i] = g.value(depth + 1)
		}
	}
	return arr
}

func (g valueGen) value(depth int) Value {
	if depth >= 4 {
		return g.primitive()
	}
	switch g.r.Intn(3) {
	case 0:
		return g.object(depth)
	case 1:
		return g.array(depth)
	default:
		return g.primitive()
	}
}

// root favors containers so most documents have structure at the top.
func (g valueGen) root() Value {
	switch g.r.Intn(5) {
	case 0, 1:
		return g.object(0)
	case 2, 3:
		return g.array(0)
	default:
		return g.primitive()
	}
}

func TestGeneratedRoundTrip(t *testing.T) {
	delims := []Delimiter{Comma, Tab, Pipe}
	indents := []string{" ", "  ", "    "}
	markers := []rune{0, '#'}

	g := valueGen{r: rand.New(rand.NewSource(20240611))}
	for i := 0; i < 3000; i++ {
		v := g.root()
		want := Normalize(v)
		opts := &EncodeOptions{
			Delimiter:    delims[i%len(delims)],
			Indent:       indents[(i/len(delims))%len(indents)],
			LengthMarker: markers[i%len(markers)],
		}

		out, err := EncodeWithOptions(v, opts)
		if err != nil {
			t.Fatalf("value %d: encode %#v: %v", i, v, err)
		}
		got, err := Decode(out)
		if err != nil {
			t.Fatalf("value %d: decode %q: %v", i, out, err)
		}
		if !Equal(got, want) {
			t.Fatalf("value %d with delimiter %q indent %q:\ntoon: %q\nwant: %#v\ngot:  %#v",
				i, rune(opts.Delimiter), opts.Indent, out, want, got)
		}

		again, err := EncodeWithOptions(got, opts)
		if err != nil {
			t.Fatalf("value %d: re-encode: %v", i, err)
		}
		if again != out {
			t.Fatalf("value %d: re-encoding changed the output:\nfirst:  %q\nsecond: %q", i, out, again)
		}
	}
}

func TestGeneratedStrings(t *testing.T) {
	g := valueGen{r: rand.New(rand.NewSource(7))}
	for i := 0; i < 5000; i++ {
		s := g.text()

		back, err := Unescape(Escape(s))
		if err != nil {
			t.Fatalf("Unescape(Escape(%q)): %v", s, err)
		}
		if back != s {
			t.Fatalf("Unescape(Escape(%q)) = %q", s, back)
		}

		v, err := Decode(Quote(s))
		if err != nil {
			t.Fatalf("Decode(Quote(%q)): %v", s, err)
		}
		if !Equal(v, String(s)) {
			t.Fatalf("Decode(Quote(%q)) = %#v", s, v)
		}

		for _, d := range []Delimiter{Comma, Tab, Pipe} {
			if NeedsQuoting(s, d) {
				continue
			}
			v, err := DecodeWithOptions("k: "+s, &DecodeOptions{Delimiter: d, Strict: true, CoerceTypes: true})
			if err != nil {
				t.Fatalf("bare %q with delimiter %q: %v", s, rune(d), err)
			}
			if got, _ := v.(Object).Get("k"); !Equal(got, String(s)) {
				t.Fatalf("bare %q with delimiter %q read back as %#v", s, rune(d), got)
			}
		}
	}
}
