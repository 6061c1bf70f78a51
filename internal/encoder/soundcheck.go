package encoder

import (
	"fmt"
	"math"
	"strings"

	"flacmirror/internal/metadata"
)

// soundCheck converts a replay-gain decibel string into the iTunes
// Sound Check representation: the gain mapped through
// 1000·10^(−dB/10), rendered as ten identical 8-digit hex words.
func soundCheck(gain string) (string, error) {
	db, err := metadata.ParseDecibels(gain)
	if err != nil {
		return "", err
	}
	sc := int64(1000 * math.Pow(10, -db/10))
	word := fmt.Sprintf("%08X", sc)
	words := make([]string, 10)
	for i := range words {
		words[i] = word
	}
	return strings.Join(words, " "), nil
}
