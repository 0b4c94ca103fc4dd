package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCartMetadataMerge(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name     string
		stored   CartMetadata
		incoming CartMetadata
		expected CartMetadata
	}{
		{
			name:     "given empty incoming should keep stored identity",
			stored:   CartMetadata{CustomerEmail: "buyer@acme.example", ExternalCustomerID: "7001"},
			incoming: CartMetadata{},
			expected: CartMetadata{CustomerEmail: "buyer@acme.example", ExternalCustomerID: "7001"},
		},
		{
			name:     "given new email should overwrite stored email",
			stored:   CartMetadata{CustomerEmail: "old@acme.example"},
			incoming: CartMetadata{CustomerEmail: "new@acme.example"},
			expected: CartMetadata{CustomerEmail: "new@acme.example"},
		},
		{
			name:     "given identified incoming should clear anonymous flag",
			stored:   CartMetadata{IsAnonymous: true},
			incoming: CartMetadata{IsAnonymous: false, CustomerEmail: "buyer@acme.example"},
			expected: CartMetadata{IsAnonymous: false, CustomerEmail: "buyer@acme.example"},
		},
		{
			name:     "given anonymous incoming should not regress identified cart",
			stored:   CartMetadata{IsAnonymous: false, CustomerEmail: "buyer@acme.example"},
			incoming: CartMetadata{IsAnonymous: true},
			expected: CartMetadata{IsAnonymous: false, CustomerEmail: "buyer@acme.example"},
		},
		{
			name:     "given sync timestamp should overwrite stored timestamp",
			stored:   CartMetadata{},
			incoming: CartMetadata{LastSyncAt: &now},
			expected: CartMetadata{LastSyncAt: &now},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.stored.Merge(test.incoming))
		})
	}
}

func TestCartConverted(t *testing.T) {
	assert.False(t, Cart{}.Converted())

	orderId := uuid.New()
	assert.True(t, Cart{ConvertedOrderID: &orderId}.Converted())
}
