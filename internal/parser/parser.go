package parser

import (
	"regexp"
	"strconv"
	"strings"

	"ridewatch/internal/model"
)

// Order messages look like:
//
//	46.26 € | Test User
//	Felberstraße 21, 86154 Augsburg
//	->
//	Felberstraße 16, 86405 Meitingen
//
// The price has exactly two decimal places, the "| ..." annotation is
// optional, and origin and destination are separated by a literal "->" line.
var orderPattern = regexp.MustCompile(`^(?P<price>\d+\.\d{2})\s*€\s*(?:\|.*?)?\n(?P<from>[^\n]+)\n->\n(?P<to>[^\n]+)`)

// Parse extracts an order from raw chat text. It returns nil when the text
// does not match the order pattern; most chat messages are not orders, so a
// miss is expected and is not an error.
func Parse(raw string) *model.Order {
	m := orderPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}

	price, err := strconv.ParseFloat(m[orderPattern.SubexpIndex("price")], 64)
	if err != nil {
		return nil
	}

	return &model.Order{
		Price: price,
		From:  strings.TrimSpace(m[orderPattern.SubexpIndex("from")]),
		To:    strings.TrimSpace(m[orderPattern.SubexpIndex("to")]),
	}
}
