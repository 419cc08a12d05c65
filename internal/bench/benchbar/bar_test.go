package benchbar

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar(t *testing.T) {
	out := bytes.Buffer{}
	bar := NewBar(&out, "Inserting 3 users", 3)

	bar.Inc()
	bar.Inc()
	assert.Equal(t, 2, bar.Current())

	bar.Inc()
	bar.Finish()
	assert.Equal(t, 3, bar.Current())
	assert.Contains(t, out.String(), "Inserting 3 users")
}
