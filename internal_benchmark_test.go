package cookiesession

import (
	"testing"
	"time"
)

var benchData = map[string]any{
	"user_id":    float64(42),
	"visitor_id": "b1946ac92492d2347c6235b4d2611184",
	"role":       "admin",
	"count":      float64(17),
}

func BenchmarkEncodeToken(b *testing.B) {
	secret := []byte("bench-secret")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EncodeToken(benchData, time.Hour, secret); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeToken(b *testing.B) {
	secret := []byte("bench-secret")
	token, err := EncodeToken(benchData, time.Hour, secret)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := DecodeToken(token, secret); !ok {
			b.Fatal("decode failed")
		}
	}
}
