package purchase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPurchase(t *testing.T) *PurchaseEntry {
	items := []PurchaseItemSpec{
		{ProductID: uuid.New(), ProductName: "LPG 14.2kg", Quantity: 50, UnitPrice: decimal.NewFromInt(600)},
		{ProductID: uuid.New(), ProductName: "LPG 19kg", Quantity: 20, UnitPrice: decimal.NewFromInt(900)},
	}
	p, err := NewPurchaseEntry(uuid.New(), "Bharat Gas Depot", "PINV-2026-001", time.Now(), items, "", uuid.New())
	require.NoError(t, err)
	return p
}

func TestNewPurchaseEntry(t *testing.T) {
	p := createTestPurchase(t)

	assert.True(t, p.IsActive)
	assert.Len(t, p.Items, 2)
	// 50*600 + 20*900
	assert.True(t, p.TotalAmount.Equal(decimal.NewFromInt(48000)))

	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	received, ok := events[0].(*PurchaseReceivedEvent)
	require.True(t, ok)
	assert.Equal(t, p.ID, received.PurchaseID)
	assert.Len(t, received.Items, 2)
	assert.Equal(t, 50, received.Items[0].Quantity)
}

func TestNewPurchaseEntry_Validation(t *testing.T) {
	items := []PurchaseItemSpec{{ProductID: uuid.New(), ProductName: "P", Quantity: 1, UnitPrice: decimal.NewFromInt(1)}}

	t.Run("missing vendor", func(t *testing.T) {
		_, err := NewPurchaseEntry(uuid.Nil, "", "INV", time.Now(), items, "", uuid.New())
		require.Error(t, err)
	})

	t.Run("missing invoice", func(t *testing.T) {
		_, err := NewPurchaseEntry(uuid.New(), "V", "", time.Now(), items, "", uuid.New())
		require.Error(t, err)
	})

	t.Run("no items", func(t *testing.T) {
		_, err := NewPurchaseEntry(uuid.New(), "V", "INV", time.Now(), nil, "", uuid.New())
		require.Error(t, err)
	})

	t.Run("zero quantity", func(t *testing.T) {
		bad := []PurchaseItemSpec{{ProductID: uuid.New(), Quantity: 0, UnitPrice: decimal.NewFromInt(1)}}
		_, err := NewPurchaseEntry(uuid.New(), "V", "INV", time.Now(), bad, "", uuid.New())
		require.Error(t, err)
	})

	t.Run("duplicate product", func(t *testing.T) {
		productID := uuid.New()
		bad := []PurchaseItemSpec{
			{ProductID: productID, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			{ProductID: productID, Quantity: 2, UnitPrice: decimal.NewFromInt(1)},
		}
		_, err := NewPurchaseEntry(uuid.New(), "V", "INV", time.Now(), bad, "", uuid.New())
		require.Error(t, err)
	})
}

func TestUpdateItems(t *testing.T) {
	p := createTestPurchase(t)

	err := p.UpdateItems([]PurchaseItemSpec{
		{ProductID: uuid.New(), ProductName: "LPG 5kg", Quantity: 10, UnitPrice: decimal.NewFromInt(300)},
	}, uuid.New())
	require.NoError(t, err)

	assert.Len(t, p.Items, 1)
	assert.True(t, p.TotalAmount.Equal(decimal.NewFromInt(3000)))
}

func TestUpdateItems_InactiveEntry(t *testing.T) {
	p := createTestPurchase(t)
	p.SetActive(false, uuid.New())

	err := p.UpdateItems([]PurchaseItemSpec{
		{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
	}, uuid.New())
	require.Error(t, err)
}
