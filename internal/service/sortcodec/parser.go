package sortcodec

import (
	"github.com/target/sortparam/internal/domain/model"
)

// Parse turns raw request values into a Sort.
//
// Each value is tokenized and, when its last token is a direction word, that token becomes the
// direction for every other token of the value. Otherwise every token is a property sorted
// ascending. A value holding only a direction word contributes nothing.
func Parse(values []string, delimiter string) model.Sort {
	var orders []model.Order
	for _, raw := range values {
		orders = append(orders, parseExpression(raw, delimiter)...)
	}
	return model.SortOf(orders...)
}

func parseExpression(raw, delimiter string) []model.Order {
	tokens := Tokenize(raw, delimiter)
	if len(tokens) == 0 {
		return nil
	}

	properties := tokens
	dir, explicit := model.ParseDirection(tokens[len(tokens)-1])
	if explicit {
		properties = tokens[:len(tokens)-1]
	} else {
		dir = model.DirectionAsc
	}

	orders := make([]model.Order, 0, len(properties))
	for _, property := range properties {
		if property == "" {
			continue
		}
		orders = append(orders, model.NewOrder(property, dir))
	}
	return orders
}
