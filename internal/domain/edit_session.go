package domain

import (
	"math"
	"strconv"
	"strings"
)

// Draft field names accepted by EditField.
const (
	FieldName  = "name"
	FieldPrice = "price"
	FieldImage = "image"
)

var DraftFieldNames = []string{FieldName, FieldPrice, FieldImage}

func IsDraftField(name string) bool {
	switch name {
	case FieldName, FieldPrice, FieldImage:
		return true
	}
	return false
}

type EditState string

const (
	EditStateIdle       EditState = "idle"
	EditStateDrafting   EditState = "drafting"
	EditStateSubmitting EditState = "submitting"
)

// EditTarget selects what a draft will be committed to. An empty ItemID means a new item.
type EditTarget struct {
	ItemID string `json:"itemId,omitempty"`
}

func NewItemTarget() EditTarget { return EditTarget{} }

func ExistingItemTarget(id string) EditTarget { return EditTarget{ItemID: id} }

func (t EditTarget) IsNew() bool { return t.ItemID == "" }

// DraftFields holds raw admin input exactly as typed.
type DraftFields struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
}

// DraftFromItem pre-fills a draft from an existing catalog item.
func DraftFromItem(item CatalogItem) DraftFields {
	return DraftFields{
		Name:  item.Name,
		Price: strconv.FormatFloat(item.Price, 'f', -1, 64),
		Image: item.Image,
	}
}

func (d DraftFields) With(name, value string) DraftFields {
	switch name {
	case FieldName:
		d.Name = value
	case FieldPrice:
		d.Price = value
	case FieldImage:
		d.Image = value
	}
	return d
}

// EditSession is a read-only snapshot of the admin edit workflow.
type EditSession struct {
	State  EditState   `json:"state"`
	Target EditTarget  `json:"target"`
	Fields DraftFields `json:"fields"`
}

func (s EditSession) Active() bool {
	return s.State != EditStateIdle
}

// ValidatedItem is a catalog payload that passed draft validation.
// The zero value is not valid; build one through ValidateDraft.
type ValidatedItem struct {
	name  string
	price float64
	image string
}

func (v ValidatedItem) Name() string   { return v.name }
func (v ValidatedItem) Price() float64 { return v.price }
func (v ValidatedItem) Image() string  { return v.image }
func (v ValidatedItem) IsZero() bool   { return v.name == "" && v.image == "" }

func (v ValidatedItem) Fields() ItemFields {
	return ItemFields{Name: v.name, Price: v.price, Image: v.image}
}

// ValidateDraft applies the submit rules: name and image non-empty after trim,
// price a finite non-negative number. Every violation is reported.
func ValidateDraft(d DraftFields) (ValidatedItem, error) {
	fields := make(map[string]string)

	name := strings.TrimSpace(d.Name)
	if name == "" {
		fields[FieldName] = "name is required"
	}

	image := strings.TrimSpace(d.Image)
	if image == "" {
		fields[FieldImage] = "image is required"
	}

	var price float64
	raw := strings.TrimSpace(d.Price)
	if raw == "" {
		fields[FieldPrice] = "price is required"
	} else {
		p, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil, math.IsNaN(p), math.IsInf(p, 0):
			fields[FieldPrice] = "price must be a number"
		case p < 0:
			fields[FieldPrice] = "price must not be negative"
		default:
			price = p
		}
	}

	if len(fields) > 0 {
		return ValidatedItem{}, &ValidationError{Fields: fields}
	}
	return ValidatedItem{name: name, price: price, image: image}, nil
}

// ValidateItem re-checks an already validated payload before it reaches the gateway.
func ValidateItem(v ValidatedItem) error {
	if v.IsZero() {
		return &ValidationError{Fields: map[string]string{
			FieldName:  "name is required",
			FieldImage: "image is required",
		}}
	}
	if !ValidPrice(v.price) {
		return &ValidationError{Fields: map[string]string{FieldPrice: "price must not be negative"}}
	}
	return nil
}
