package models

// Person is a uniquely identified record in the registry.
//
// Invariants:
//   - ID is positive, assigned by the store monotonically from 1, and never
//     reused after deletion
//   - Name is non-empty (enforced at the transport boundary)
//   - Email is unique across all stored persons, compared case-sensitively
//
// Age is intentionally unconstrained: negative values are accepted input.
type Person struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

// Patch describes a partial update. A nil field means "leave unchanged";
// a non-nil field overwrites the stored value. The email check-and-write is
// all-or-nothing: if the new email collides with another person, no field of
// the patch is applied.
type Patch struct {
	Name  *string
	Age   *int
	Email *string
}

// Empty reports whether the patch carries no fields.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Age == nil && p.Email == nil
}

// Apply overwrites the present fields on the person. Callers must have
// already validated email uniqueness.
func (p Patch) Apply(person *Person) {
	if p.Name != nil {
		person.Name = *p.Name
	}
	if p.Age != nil {
		person.Age = *p.Age
	}
	if p.Email != nil {
		person.Email = *p.Email
	}
}
