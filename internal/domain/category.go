package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UncategorizedLabel is displayed for items without a category key.
const UncategorizedLabel = "Other"

// CategoryGroup is a run of price list items sharing a category key.
type CategoryGroup struct {
	Key   string        `json:"key"`
	Label string        `json:"label"`
	Items []CatalogItem `json:"items"`
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// CategoryLabel turns a category key such as "custom_graphics" into
// "Custom Graphics". The key itself is left untouched.
func CategoryLabel(key string) string {
	tokens := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == ' '
	})
	if len(tokens) == 0 {
		return UncategorizedLabel
	}
	for i, t := range tokens {
		tokens[i] = titleCaser.String(t)
	}
	return strings.Join(tokens, " ")
}

// GroupByCategory partitions items by category. Groups appear in order of the
// first item of each category; items keep their input order.
func GroupByCategory(items []CatalogItem) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(groups)
			index[it.Category] = i
			groups = append(groups, CategoryGroup{
				Key:   it.Category,
				Label: CategoryLabel(it.Category),
			})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}
