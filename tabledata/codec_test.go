package tabledata

import (
	"math"
	"strings"
	"testing"
)

func sampleTable() Value {
	m := Map()
	m.Set("name", String("backup-job"))
	m.Set("retries", Number(3))
	m.Set("enabled", Bool(true))
	m.Set("ratio", Number(0.25))
	m.Set("paths", Seq(String("/etc"), String("/var/lib")))
	nested := Map()
	nested.Set("host", String("example.org"))
	nested.Set("port", Number(22))
	m.Set("remote", nested)
	return m
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := sampleTable()

	data, err := Encode(original)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v\nencoded:\n%s", err, data)
	}
	if !Equal(original, decoded) {
		t.Errorf("round trip changed value\nencoded:\n%s", data)
	}
}

func TestEncodePreservesKeyOrder(t *testing.T) {
	m := Map()
	m.Set("zebra", Number(1))
	m.Set("apple", Number(2))

	data, err := Encode(m)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Index(string(data), "zebra") > strings.Index(string(data), "apple") {
		t.Errorf("insertion order not preserved:\n%s", data)
	}
}

func TestEncodeQuotesAmbiguousStrings(t *testing.T) {
	// A string that looks like a number must survive the round trip as a
	// string.
	m := Map()
	m.Set("version", String("1.10"))
	m.Set("flag", String("true"))

	data, err := Encode(m)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := decoded.Get("version")
	if s, err := v.AsString(); err != nil || s != "1.10" {
		t.Errorf("version decoded as %v %q (encoded:\n%s)", v.Kind(), s, data)
	}
	v, _ = decoded.Get("flag")
	if s, err := v.AsString(); err != nil || s != "true" {
		t.Errorf("flag decoded as %v %q", v.Kind(), s)
	}
}

func TestDecodeIntegerAndFloatBothNumbers(t *testing.T) {
	v, err := Decode([]byte("a: 5\nb: 5.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	a, _ := v.Get("a")
	if n, err := a.AsNumber(); err != nil || n != 5 {
		t.Errorf("a = %v, %v", n, err)
	}
	b, _ := v.Get("b")
	if n, err := b.AsNumber(); err != nil || n != 5.5 {
		t.Errorf("b = %v, %v", n, err)
	}
}

func TestDecodeRejectsOutsideTheUnion(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"null value", "key: null\n"},
		{"empty value is null", "key:\n"},
		{"alias", "a: &x 1\nb: *x\n"},
		{"timestamp tag", "when: !!timestamp 2001-12-15T02:59:43Z\n"},
		{"custom tag", "thing: !mytype {a: 1}\n"},
		{"binary tag", "blob: !!binary aGk=\n"},
		{"non-string key", "1: one\n"},
		{"duplicate key", "a: 1\na: 2\n"},
		{"multiple documents", "a: 1\n---\nb: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v, err := Decode([]byte(tt.input)); err == nil {
				t.Errorf("Decode(%q) accepted: %v", tt.input, v)
			}
		})
	}
}

func TestDecodeScalarDocument(t *testing.T) {
	v, err := Decode([]byte(`"just a string"`))
	if err != nil {
		t.Fatal(err)
	}
	if s, err := v.AsString(); err != nil || s != "just a string" {
		t.Errorf("got %v %q", v.Kind(), s)
	}
}

func TestEncodeRejectsNonFiniteNumbers(t *testing.T) {
	if _, err := Encode(Number(math.Inf(1))); err == nil {
		t.Error("expected error encoding +Inf")
	}
	if _, err := Encode(Number(math.NaN())); err == nil {
		t.Error("expected error encoding NaN")
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	original := sampleTable()

	data, err := EncodeTOML(original)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeTOML(data)
	if err != nil {
		t.Fatalf("decode failed: %v\nencoded:\n%s", err, data)
	}
	if !Equal(original, decoded) {
		t.Errorf("TOML round trip changed value\nencoded:\n%s", data)
	}
}

func TestEncodeTOMLRequiresMap(t *testing.T) {
	if _, err := EncodeTOML(Seq(Number(1))); err == nil {
		t.Error("expected error for non-map document")
	}
}

func TestDecodeTOMLRejectsDates(t *testing.T) {
	if _, err := DecodeTOML([]byte("when = 2001-12-15T02:59:43Z\n")); err == nil {
		t.Error("expected error for datetime value")
	}
}
