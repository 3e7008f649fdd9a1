package parsing

import "github.com/zombor/receipt-reader/internal/receipt"

// Field names an optional record field filled during a scan
type Field int

const (
	FieldStoreName Field = iota
	FieldStoreLocation
)

// Policy decides what happens when a field is written more than once
type Policy int

const (
	// SetOnce keeps the first value written
	SetOnce Policy = iota
	// Overwrite keeps the last value written
	Overwrite
)

// Policies declares the write policy of each optional field.
// Fields missing from the map default to SetOnce.
type Policies map[Field]Policy

// Builder accumulates a record over a single pass through the tokens
type Builder struct {
	record   *receipt.Record
	policies Policies
}

// NewBuilder starts a record for fileName
func NewBuilder(fileName string, policies Policies) *Builder {
	return &Builder{
		record:   &receipt.Record{FileName: fileName},
		policies: policies,
	}
}

// Set writes a field according to its policy
func (b *Builder) Set(field Field, value string) {
	target := b.fieldPtr(field)
	if *target != nil && b.policies[field] == SetOnce {
		return
	}
	v := value
	*target = &v
}

func (b *Builder) fieldPtr(field Field) **string {
	switch field {
	case FieldStoreName:
		return &b.record.StoreName
	case FieldStoreLocation:
		return &b.record.StoreLocation
	}
	panic("parsing: unknown record field")
}

// EnsureGroceries starts the item list if it does not exist yet
func (b *Builder) EnsureGroceries() {
	if b.record.Groceries == nil {
		b.record.Groceries = []receipt.LineItem{}
	}
}

// AddItem appends a line item in discovery order
func (b *Builder) AddItem(name, price string) {
	b.EnsureGroceries()
	b.record.Groceries = append(b.record.Groceries, receipt.LineItem{Name: name, Price: price})
}

// Record returns the accumulated record
func (b *Builder) Record() *receipt.Record {
	return b.record
}
