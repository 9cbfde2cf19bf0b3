package order

import (
	"errors"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an order line owned by its Order aggregate. It references a menu
// item held by the restaurant service together with the option values the
// client selected for it.
type Item struct {
	id                     int64
	menuItemID             int64
	quantity               int
	unitPrice              decimal.Decimal
	selectedOptionValueIDs []int64
	notes                  *string

	isConstructed bool
}

// NewItem creates a validated order line. Quantity must be at least 1 and
// the unit price must not be negative.
func NewItem(
	menuItemID int64,
	quantity int,
	unitPrice decimal.Decimal,
	selectedOptionValueIDs []int64,
	notes *string,
) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	item.selectedOptionValueIDs = append([]int64(nil), selectedOptionValueIDs...)
	item.notes = notes
	return item, nil
}

// RestoreItem rehydrates an order line from persistence without re-running
// creation validation.
func RestoreItem(
	id int64,
	menuItemID int64,
	quantity int,
	unitPrice decimal.Decimal,
	selectedOptionValueIDs []int64,
	notes *string,
) Item {
	return Item{
		id:                     id,
		menuItemID:             menuItemID,
		quantity:               quantity,
		unitPrice:              unitPrice,
		selectedOptionValueIDs: append([]int64(nil), selectedOptionValueIDs...),
		notes:                  notes,
		isConstructed:          true,
	}
}

// Validate ensures the item was built through NewItem or RestoreItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the persistent identifier, zero for unsaved items.
func (i Item) ID() int64 {
	return i.id
}

// MenuItemID returns the referenced menu item id.
func (i Item) MenuItemID() int64 {
	return i.menuItemID
}

// Quantity returns how many units of the menu item were ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price at ordering time.
func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// SelectedOptionValueIDs returns the ids of the chosen menu item options.
func (i Item) SelectedOptionValueIDs() []int64 {
	return append([]int64(nil), i.selectedOptionValueIDs...)
}

// Notes returns the free-form client note for the line, nil when absent.
func (i Item) Notes() *string {
	return i.notes
}

// LineTotal returns quantity times unit price.
func (i Item) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setMenuItemID(menuItemID int64) error {
	if menuItemID <= 0 {
		return errs.NewValueIsRequiredError("menu_item_id")
	}

	i.menuItemID = menuItemID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidError("unit_price")
	}

	i.unitPrice = unitPrice
	return nil
}
