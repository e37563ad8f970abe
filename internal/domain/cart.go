package domain

import "time"

// LineKind distinguishes the two add-on line sets in a cart.
type LineKind string

const (
	LineKindRakhi LineKind = "rakhi"
	LineKindAddon LineKind = "addon"
)

// Step is the checkout wizard position for a cart session.
type Step string

const (
	StepSelectHamper Step = "select_hamper"
	StepUploadPhotos Step = "upload_photos"
	StepWriteMessage Step = "write_message"
	StepPickAddons   Step = "pick_addons"
	StepReview       Step = "review"
	StepConfirmed    Step = "confirmed"
)

// MaxMessageLength caps the free-text gift message.
const MaxMessageLength = 100

// CartAddonLine is one selected catalog item with its running quantity.
// At most one line per item id exists in each line set; a line whose
// quantity would drop to zero is removed instead.
type CartAddonLine struct {
	ID       string  `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// Cart is the in-progress selection state for one checkout session.
type Cart struct {
	ID               string          `bson:"_id,omitempty" json:"id"`
	Hamper           *HamperOption   `bson:"hamper,omitempty" json:"hamper,omitempty"`
	Photo            string          `bson:"photo" json:"photo"` // primary photo, first of Photos
	Photos           []string        `bson:"photos" json:"photos"`
	Message          string          `bson:"message" json:"message"`
	AdditionalRakhis []CartAddonLine `bson:"additional_rakhis" json:"additionalRakhis"`
	Addons           []CartAddonLine `bson:"addons" json:"addons"`
	Step             Step            `bson:"step" json:"step"`
	CreatedAt        time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time       `bson:"updated_at" json:"updatedAt"`
}

// NewCart returns an empty cart session positioned at hamper selection.
func NewCart(id string) *Cart {
	now := time.Now()
	return &Cart{
		ID:        id,
		Photos:    []string{},
		Step:      StepSelectHamper,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SelectHamper replaces the chosen hamper. Switching to a different hamper
// clears any uploaded photos, since photo allowances differ per hamper and
// keeping them could leave the cart over quota. Re-selecting the current
// hamper keeps the photos.
func (c *Cart) SelectHamper(option HamperOption) {
	if c.Hamper == nil || c.Hamper.ID != option.ID {
		c.Photos = []string{}
		c.Photo = ""
	}
	h := option
	c.Hamper = &h
}

// AddLine records one more unit of item in the line set for kind. A new
// line starts at quantity 1; an existing line is incremented.
func (c *Cart) AddLine(kind LineKind, item CartAddonLine) {
	lines := c.lines(kind)
	for i := range *lines {
		if (*lines)[i].ID == item.ID {
			(*lines)[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	*lines = append(*lines, item)
}

// RemoveLine takes one unit of itemID away, deleting the line when its
// quantity reaches zero. Unknown ids are a no-op.
func (c *Cart) RemoveLine(kind LineKind, itemID string) {
	lines := c.lines(kind)
	for i := range *lines {
		if (*lines)[i].ID != itemID {
			continue
		}
		if (*lines)[i].Quantity > 1 {
			(*lines)[i].Quantity--
		} else {
			*lines = append((*lines)[:i], (*lines)[i+1:]...)
		}
		return
	}
}

func (c *Cart) lines(kind LineKind) *[]CartAddonLine {
	if kind == LineKindRakhi {
		return &c.AdditionalRakhis
	}
	return &c.Addons
}

// SetMessage stores the gift message, truncated to MaxMessageLength runes.
// Applying it to already-truncated text yields the same result.
func (c *Cart) SetMessage(text string) {
	runes := []rune(text)
	if len(runes) > MaxMessageLength {
		text = string(runes[:MaxMessageLength])
	}
	c.Message = text
}

// Pricing holds the configurable delivery surcharge. A zero DeliveryCharge
// disables the surcharge; a non-zero FreeDeliveryAbove waives it once the
// cart subtotal reaches that amount.
type Pricing struct {
	DeliveryCharge    float64
	FreeDeliveryAbove float64
}

// Total computes the payable amount: hamper price plus both line sets,
// plus the delivery surcharge when configured and not waived. Pure; an
// empty cart totals just the surcharge (or 0 without one).
func (c *Cart) Total(p Pricing) float64 {
	var subtotal float64
	if c.Hamper != nil {
		subtotal = c.Hamper.Price
	}
	for _, line := range c.AdditionalRakhis {
		subtotal += line.Price * float64(line.Quantity)
	}
	for _, line := range c.Addons {
		subtotal += line.Price * float64(line.Quantity)
	}

	if p.DeliveryCharge > 0 && (p.FreeDeliveryAbove == 0 || subtotal < p.FreeDeliveryAbove) {
		return subtotal + p.DeliveryCharge
	}
	return subtotal
}

// HamperID returns the selected hamper's id, or "" when none is chosen.
func (c *Cart) HamperID() string {
	if c.Hamper == nil {
		return ""
	}
	return c.Hamper.ID
}

// AppendPhoto adds a photo reference, promoting it to primary when it is
// the first one.
func (c *Cart) AppendPhoto(ref string) {
	c.Photos = append(c.Photos, ref)
	if len(c.Photos) == 1 {
		c.Photo = ref
	}
}

// PatchPhoto swaps an existing photo reference in place, preserving its
// slot. Used when an upload completes and the local placeholder is
// replaced by the durable URL. Returns false if old is no longer present.
func (c *Cart) PatchPhoto(old, ref string) bool {
	for i := range c.Photos {
		if c.Photos[i] == old {
			c.Photos[i] = ref
			if i == 0 {
				c.Photo = ref
			}
			return true
		}
	}
	return false
}

// RemovePhotoAt deletes the photo at index and re-derives the primary
// photo from whatever remains. Out-of-range indexes are a no-op.
func (c *Cart) RemovePhotoAt(index int) {
	if index < 0 || index >= len(c.Photos) {
		return
	}
	c.Photos = append(c.Photos[:index], c.Photos[index+1:]...)
	if len(c.Photos) > 0 {
		c.Photo = c.Photos[0]
	} else {
		c.Photo = ""
	}
}
