package hub

// Creator is one contributor to a record (author, editor, translator, ...).
type Creator struct {
	FirstName *string
	LastName  string

	// CreatorType is a free-form role label; it may be empty.
	CreatorType string
}

// DisplayName returns the name in "Given Family" order, or just the family
// name when no given name was supplied.
func (c Creator) DisplayName() string {
	if c.FirstName != nil {
		return *c.FirstName + " " + c.LastName
	}
	return c.LastName
}

// HasRole reports whether the creator carries a non-empty role label.
func (c Creator) HasRole() bool {
	return c.CreatorType != ""
}
