package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFalsyOnlyFalseIsFalsy(t *testing.T) {
	assert.True(t, Bool(false).Falsy())
	assert.False(t, Bool(true).Falsy())
	assert.False(t, Nil.Falsy())
	assert.False(t, Number(0).Falsy())
	assert.False(t, String(&InternedString{Bytes: ""}).Falsy())
}

func TestEqualityCrossKindIsFalse(t *testing.T) {
	assert.False(t, Number(0).Equal(Bool(false)))
	assert.False(t, Nil.Equal(Bool(false)))
	assert.True(t, Nil.Equal(Nil))
}

func TestEqualityComponentwise(t *testing.T) {
	assert.True(t, Number(3).Equal(Number(3)))
	assert.False(t, Number(3).Equal(Number(4)))
	assert.True(t, Bool(true).Equal(Bool(true)))
}

func TestStringEqualityIsRefIdentity(t *testing.T) {
	a := &InternedString{Bytes: "foo"}
	b := &InternedString{Bytes: "foo"}
	assert.True(t, String(a).Equal(String(a)))
	// Distinct pointers with equal bytes are NOT equal at this layer;
	// pkg/heap is responsible for ensuring only one pointer per content
	// ever exists, which is what makes this sound in practice.
	assert.False(t, String(a).Equal(String(b)))
}

func TestPrintForms(t *testing.T) {
	assert.Equal(t, "nil", Nil.String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "false", Bool(false).String())
	assert.Equal(t, "7", Number(7).String())
	assert.Equal(t, "1.5", Number(1.5).String())
	assert.Equal(t, "foobar", String(&InternedString{Bytes: "foobar"}).String())
}
