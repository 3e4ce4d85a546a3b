package deck

import _ "embed"

//go:embed sample.yaml
var sampleYAML []byte

// SampleYAML returns the raw YAML of the built-in sample deck.
func SampleYAML() []byte {
	out := make([]byte, len(sampleYAML))
	copy(out, sampleYAML)
	return out
}

// Sample returns the built-in ten-slide deck. It panics if the embedded file
// is invalid, which the package tests rule out.
func Sample() *Deck {
	d, err := Parse(sampleYAML)
	if err != nil {
		panic("deck: embedded sample: " + err.Error())
	}
	return d
}
