package container

import (
	"fmt"

	"github.com/osse101/realmkeeper/internal/domain"
)

// ChangeFunc observes a slot after it changes
type ChangeFunc func(index int, item domain.ItemStack)

// Container is a fixed-size list of item slots used for inventories and banks.
// It is not safe for concurrent use.
type Container struct {
	kind     domain.ContainerType
	slots    []domain.ItemStack
	onChange ChangeFunc
}

// New creates a container of size slots seeded from items. Extra items are
// dropped and missing ones are empty.
func New(kind domain.ContainerType, size int, items []domain.ItemStack) *Container {
	if size < 0 {
		size = 0
	}
	c := &Container{kind: kind, slots: make([]domain.ItemStack, size)}
	copy(c.slots, items)
	return c
}

// FromContents builds a container from a storage load
func FromContents(kind domain.ContainerType, contents *domain.ContainerContents) *Container {
	if contents == nil {
		return New(kind, 0, nil)
	}
	return New(kind, contents.Size, contents.Slots)
}

// OnChange registers fn to observe every slot mutation
func (c *Container) OnChange(fn ChangeFunc) {
	c.onChange = fn
}

// Kind returns the container type
func (c *Container) Kind() domain.ContainerType {
	return c.kind
}

// Size returns the number of slots
func (c *Container) Size() int {
	return len(c.slots)
}

// Slot returns the item at index
func (c *Container) Slot(index int) (domain.ItemStack, error) {
	if index < 0 || index >= len(c.slots) {
		return domain.ItemStack{}, fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, index)
	}
	return c.slots[index], nil
}

// Slots returns a copy of every slot
func (c *Container) Slots() []domain.ItemStack {
	out := make([]domain.ItemStack, len(c.slots))
	copy(out, c.slots)
	return out
}

// HasSpace reports whether at least one slot is empty
func (c *Container) HasSpace() bool {
	return c.firstEmpty() >= 0
}

// Add places item into the first empty slot
func (c *Container) Add(item domain.ItemStack) (int, bool) {
	idx := c.firstEmpty()
	if idx < 0 {
		return -1, false
	}
	c.set(idx, item)
	return idx, true
}

// SetSlot overwrites the slot at index
func (c *Container) SetSlot(index int, item domain.ItemStack) error {
	if index < 0 || index >= len(c.slots) {
		return fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, index)
	}
	c.set(index, item)
	return nil
}

// Empty clears the slot at index and returns what it held
func (c *Container) Empty(index int) (domain.ItemStack, error) {
	item, err := c.Slot(index)
	if err != nil {
		return item, err
	}
	c.set(index, domain.ItemStack{})
	return item, nil
}

// TakeOut removes n units from a stacked slot, emptying it when nothing is left
func (c *Container) TakeOut(index, n int) error {
	item, err := c.Slot(index)
	if err != nil {
		return err
	}
	if item.IsEmpty() {
		return fmt.Errorf("%w: slot %d is empty", domain.ErrItemNotFound, index)
	}
	item.Count -= n
	if item.Count <= 0 {
		item = domain.ItemStack{}
	}
	c.set(index, item)
	return nil
}

func (c *Container) set(index int, item domain.ItemStack) {
	c.slots[index] = item
	if c.onChange != nil {
		c.onChange(index, item)
	}
}

func (c *Container) firstEmpty() int {
	for i, s := range c.slots {
		if s.IsEmpty() {
			return i
		}
	}
	return -1
}
