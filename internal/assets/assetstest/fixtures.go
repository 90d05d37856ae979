package assetstest

import (
	"fmt"

	"github.com/lovincyrus/jira-assets/internal/assets"
)

// Object builds an object of the given type with optional attributes.
func Object(id int, label, typeName string, attrs ...assets.Attribute) assets.Object {
	return assets.Object{
		ID:         id,
		Label:      label,
		ObjectKey:  fmt.Sprintf("ITSM-%d", id),
		ObjectType: assets.ObjectType{ID: len(typeName), Name: typeName},
		Attributes: attrs,
	}
}

// Attribute builds an attribute whose values are shown as their display value.
func Attribute(defID int, name string, values ...string) assets.Attribute {
	a := assets.Attribute{
		ID:                    defID * 100,
		ObjectTypeAttributeID: defID,
		ObjectTypeAttribute:   &assets.ObjectTypeAttribute{ID: defID, Name: name},
	}
	for _, v := range values {
		a.ObjectAttributeValues = append(a.ObjectAttributeValues, assets.AttributeValue{Value: v, DisplayValue: v})
	}
	return a
}

// Objects builds n sequential objects of one type, ids starting at first.
func Objects(first, n int, typeName string) []assets.Object {
	out := make([]assets.Object, 0, n)
	for i := range n {
		id := first + i
		out = append(out, Object(id, fmt.Sprintf("%s %d", typeName, id), typeName))
	}
	return out
}
