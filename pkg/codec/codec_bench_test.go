//go:build bench
// +build bench

package codec

import "testing"

func BenchmarkEncode(b *testing.B) {
	buf := make([]byte, mixedSchema.Width())
	rec := mixed{A: 1, B: 2, C: 3, D: 4, E: 5, F: [2]int16{6, 7}, G: 8}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var cursor Offset
		if err := Encode(mixedSchema, buf, rec, &cursor); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	buf := make([]byte, mixedSchema.Width())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var cursor Offset
		if _, err := Decode(mixedSchema, buf, &cursor); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeStream(b *testing.B) {
	benchmarks := []struct {
		name    string
		records int
	}{
		{"small", 16},
		{"medium", 1024},
		{"large", 65536},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			buf := make([]byte, vertexSchema.Span(bm.records))
			b.SetBytes(int64(len(buf)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var cursor Offset
				if _, err := DecodeStream(vertexSchema, buf, &cursor, len(buf)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
