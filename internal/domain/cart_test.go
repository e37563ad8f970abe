package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLine_NewAndIncrement(t *testing.T) {
	cart := NewCart("s1")
	item := CartAddonLine{ID: "choco_ferrero", Name: "Ferrero Rocher", Price: 150}

	cart.AddLine(LineKindAddon, item)
	require.Len(t, cart.Addons, 1)
	assert.Equal(t, 1, cart.Addons[0].Quantity)

	cart.AddLine(LineKindAddon, item)
	require.Len(t, cart.Addons, 1)
	assert.Equal(t, 2, cart.Addons[0].Quantity)
}

func TestRemoveLine_DecrementAndDelete(t *testing.T) {
	cart := NewCart("s1")
	item := CartAddonLine{ID: "scarlet_spark", Name: "Scarlet Spark", Price: 50}

	cart.AddLine(LineKindRakhi, item)
	cart.AddLine(LineKindRakhi, item)

	cart.RemoveLine(LineKindRakhi, "scarlet_spark")
	require.Len(t, cart.AdditionalRakhis, 1)
	assert.Equal(t, 1, cart.AdditionalRakhis[0].Quantity)

	cart.RemoveLine(LineKindRakhi, "scarlet_spark")
	assert.Empty(t, cart.AdditionalRakhis, "line must be deleted at zero, not left lingering")
}

func TestRemoveLine_UnknownIDIsNoop(t *testing.T) {
	cart := NewCart("s1")
	cart.AddLine(LineKindAddon, CartAddonLine{ID: "a", Price: 10})

	assert.NotPanics(t, func() {
		cart.RemoveLine(LineKindAddon, "does-not-exist")
		cart.RemoveLine(LineKindRakhi, "does-not-exist")
	})
	assert.Len(t, cart.Addons, 1)
}

func TestAddRemove_NetQuantity(t *testing.T) {
	// quantity must equal adds minus removes, floored at zero
	cart := NewCart("s1")
	item := CartAddonLine{ID: "x", Price: 100}

	for i := 0; i < 5; i++ {
		cart.AddLine(LineKindAddon, item)
	}
	for i := 0; i < 3; i++ {
		cart.RemoveLine(LineKindAddon, "x")
	}
	require.Len(t, cart.Addons, 1)
	assert.Equal(t, 2, cart.Addons[0].Quantity)

	for i := 0; i < 10; i++ {
		cart.RemoveLine(LineKindAddon, "x")
	}
	assert.Empty(t, cart.Addons)
}

func TestTotal_CommutativeUnderReordering(t *testing.T) {
	a := CartAddonLine{ID: "a", Price: 150}
	b := CartAddonLine{ID: "b", Price: 100}

	first := NewCart("s1")
	first.SelectHamper(*HamperByID("gold"))
	first.AddLine(LineKindAddon, a)
	first.AddLine(LineKindAddon, b)
	first.AddLine(LineKindAddon, b)

	second := NewCart("s2")
	second.SelectHamper(*HamperByID("gold"))
	second.AddLine(LineKindAddon, b)
	second.AddLine(LineKindAddon, a)
	second.AddLine(LineKindAddon, b)

	assert.Equal(t, first.Total(Pricing{}), second.Total(Pricing{}))
	assert.Equal(t, float64(1001+150+200), first.Total(Pricing{}))
}

func TestTotal_EmptyCart(t *testing.T) {
	cart := NewCart("s1")

	assert.Equal(t, float64(0), cart.Total(Pricing{}))
	assert.Equal(t, float64(49), cart.Total(Pricing{DeliveryCharge: 49}))
}

func TestTotal_SurchargeWaivedAboveThreshold(t *testing.T) {
	pricing := Pricing{DeliveryCharge: 49, FreeDeliveryAbove: 500}

	small := NewCart("s1")
	small.SelectHamper(*HamperByID("normal")) // 251
	assert.Equal(t, float64(251+49), small.Total(pricing))

	big := NewCart("s2")
	big.SelectHamper(*HamperByID("silver")) // 551
	assert.Equal(t, float64(551), big.Total(pricing))
}

func TestSetMessage_TruncatesAndIdempotent(t *testing.T) {
	cart := NewCart("s1")
	long := strings.Repeat("ab", 80) // 160 chars

	cart.SetMessage(long)
	assert.Len(t, []rune(cart.Message), MaxMessageLength)

	truncated := cart.Message
	cart.SetMessage(truncated)
	assert.Equal(t, truncated, cart.Message, "re-applying to truncated text must not change it")
}

func TestSetMessage_ShortStoredVerbatim(t *testing.T) {
	cart := NewCart("s1")
	cart.SetMessage("Happy Rakhi!")
	assert.Equal(t, "Happy Rakhi!", cart.Message)
}

func TestSelectHamper_SwitchClearsPhotos(t *testing.T) {
	cart := NewCart("s1")
	cart.SelectHamper(*HamperByID("silver"))
	cart.AppendPhoto("https://img/one.jpg")
	cart.AppendPhoto("https://img/two.jpg")

	cart.SelectHamper(*HamperByID("gold"))
	assert.Empty(t, cart.Photos)
	assert.Empty(t, cart.Photo)
}

func TestSelectHamper_SameHamperKeepsPhotos(t *testing.T) {
	cart := NewCart("s1")
	cart.SelectHamper(*HamperByID("silver"))
	cart.AppendPhoto("https://img/one.jpg")

	cart.SelectHamper(*HamperByID("silver"))
	assert.Equal(t, []string{"https://img/one.jpg"}, cart.Photos)
	assert.Equal(t, "https://img/one.jpg", cart.Photo)
}

func TestAppendPhoto_FirstBecomesPrimary(t *testing.T) {
	cart := NewCart("s1")
	cart.AppendPhoto("one")
	cart.AppendPhoto("two")

	assert.Equal(t, "one", cart.Photo)
	assert.Equal(t, []string{"one", "two"}, cart.Photos)
}

func TestPatchPhoto_PreservesSlotAndPrimary(t *testing.T) {
	cart := NewCart("s1")
	cart.AppendPhoto("staging://a")
	cart.AppendPhoto("staging://b")

	// out-of-order completion: second upload lands first
	require.True(t, cart.PatchPhoto("staging://b", "https://img/b.jpg"))
	assert.Equal(t, []string{"staging://a", "https://img/b.jpg"}, cart.Photos)
	assert.Equal(t, "staging://a", cart.Photo)

	require.True(t, cart.PatchPhoto("staging://a", "https://img/a.jpg"))
	assert.Equal(t, "https://img/a.jpg", cart.Photo)
}

func TestPatchPhoto_MissingPlaceholder(t *testing.T) {
	cart := NewCart("s1")
	cart.AppendPhoto("staging://a")
	cart.RemovePhotoAt(0)

	assert.False(t, cart.PatchPhoto("staging://a", "https://img/a.jpg"))
	assert.Empty(t, cart.Photos)
}

func TestRemovePhotoAt_RederivesPrimary(t *testing.T) {
	cart := NewCart("s1")
	cart.AppendPhoto("one")
	cart.AppendPhoto("two")
	cart.AppendPhoto("three")

	cart.RemovePhotoAt(0)
	assert.Equal(t, "two", cart.Photo)
	assert.Equal(t, []string{"two", "three"}, cart.Photos)
}

func TestRemovePhotoAt_LastPhotoClearsPrimary(t *testing.T) {
	cart := NewCart("s1")
	cart.AppendPhoto("only")

	cart.RemovePhotoAt(0)
	assert.Empty(t, cart.Photos)
	assert.Equal(t, "", cart.Photo, "no dangling stale primary reference")
}

func TestRemovePhotoAt_OutOfRange(t *testing.T) {
	cart := NewCart("s1")
	cart.AppendPhoto("one")

	cart.RemovePhotoAt(5)
	cart.RemovePhotoAt(-1)
	assert.Equal(t, []string{"one"}, cart.Photos)
}

func TestMaxPhotos_Table(t *testing.T) {
	tests := []struct {
		hamperID string
		want     int
	}{
		{"normal", 0},
		{"silver", 2},
		{"gold", 3},
		{"custom", 1},
		{"", 1},
		{"unknown", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxPhotos(tt.hamperID), "hamper %q", tt.hamperID)
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("refunded"))
	assert.False(t, ValidOrderStatus(""))
	assert.False(t, ValidOrderStatus("PENDING"))
}
