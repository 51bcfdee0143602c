package ptr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

func TestDeref(t *testing.T) {
	assert.Equal(t, 3, ptr.Deref(ptr.New(3), 1))
	assert.Equal(t, 1, ptr.Deref[int](nil, 1))
	assert.Equal(t, "", ptr.Deref(ptr.New(""), "default"))
}
