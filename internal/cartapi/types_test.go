package cartapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The cart service returns product/variant references as either a bare id
// string or a populated object, depending on the read path. Both must
// normalize to the same canonical line item.
func TestCartResponse_NormalizesBothReferenceShapes(t *testing.T) {
	raw := `{
		"lineItems": [
			{"id": "l1", "product": "p1", "variant": "v1", "quantity": 2, "price": 100},
			{"id": "l2", "product": {"id": "p2", "name": "Ghee 1L"}, "variant": {"id": "v2", "price": 450}, "quantity": 1, "price": 450},
			{"id": "l3", "product": {"_id": "p3"}, "variant": {"_id": "v3"}, "quantity": 3, "price": 60}
		],
		"subtotal": 830
	}`

	var wire cartResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &wire))

	snap := wire.toSnapshot()
	require.Len(t, snap.Items, 3)

	assert.Equal(t, "p1", snap.Items[0].ProductID)
	assert.Equal(t, "v1", snap.Items[0].VariantID)
	assert.Equal(t, "p2", snap.Items[1].ProductID)
	assert.Equal(t, "v2", snap.Items[1].VariantID)
	assert.Equal(t, "p3", snap.Items[2].ProductID)
	assert.Equal(t, "v3", snap.Items[2].VariantID)

	assert.True(t, snap.ServerSubtotal)
	assert.Equal(t, int32(830), snap.Subtotal)
	assert.Equal(t, int32(830), snap.Total(), "server subtotal wins")
}

func TestCartResponse_MissingSubtotalFallsBackToLineSum(t *testing.T) {
	raw := `{"lineItems": [{"id": "l1", "product": "p1", "variant": "v1", "quantity": 2, "price": 100}]}`

	var wire cartResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &wire))

	snap := wire.toSnapshot()
	assert.False(t, snap.ServerSubtotal)
	assert.Equal(t, int32(200), snap.Total())
}

func TestCartResponse_ContainsProductAfterNormalization(t *testing.T) {
	raw := `{"lineItems": [{"id": "l1", "product": {"id": "p9"}, "variant": "v9", "quantity": 1, "price": 50}], "subtotal": 50}`

	var wire cartResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &wire))

	snap := wire.toSnapshot()
	assert.True(t, snap.ContainsProduct("p9"))
	assert.False(t, snap.ContainsProduct("p1"))
}
