package assessment

// Category is the identity label a completed questionnaire resolves to.
type Category string

const (
	CategoryGrey   Category = "grey"
	CategoryBlue   Category = "blue"
	CategoryGreen  Category = "green"
	CategoryYellow Category = "yellow"
	CategoryPink   Category = "pink"
)

// DefaultCategory is used whenever no category can be derived or a stored
// label is not recognised.
const DefaultCategory = CategoryBlue

// declaredOrder is the order in which categories first appear across the
// question bank. Ties in scoring resolve to the earliest entry.
var declaredOrder = [...]Category{
	CategoryGrey,
	CategoryBlue,
	CategoryYellow,
	CategoryGreen,
	CategoryPink,
}

// AllCategories returns every category in declared order.
func AllCategories() []Category {
	out := make([]Category, len(declaredOrder))
	copy(out, declaredOrder[:])
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range declaredOrder {
		if c == k {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory validates a label coming from outside the process
// (database rows, request parameters).
func ParseCategory(label string) (Category, bool) {
	c := Category(label)
	if !c.Valid() {
		return "", false
	}
	return c, true
}

// CategoryOrDefault parses label and falls back to DefaultCategory.
func CategoryOrDefault(label string) Category {
	if c, ok := ParseCategory(label); ok {
		return c
	}
	return DefaultCategory
}
