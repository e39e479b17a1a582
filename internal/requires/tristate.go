package requires

// Tri is the three-valued result of judging a requirement.
type Tri uint8

const (
	// Indeterminate means the context has no opinion.
	Indeterminate Tri = iota
	Satisfied
	Unsatisfied
)

// TriOf converts a determinate answer.
func TriOf(b bool) Tri {
	if b {
		return Satisfied
	}
	return Unsatisfied
}

// Not inverts a determinate value and keeps Indeterminate.
func (t Tri) Not() Tri {
	switch t {
	case Satisfied:
		return Unsatisfied
	case Unsatisfied:
		return Satisfied
	}
	return Indeterminate
}

// Known reports whether t is determinate.
func (t Tri) Known() bool {
	return t != Indeterminate
}

// Resolve collapses t to a bool, answering permissive for Indeterminate.
func (t Tri) Resolve(permissive bool) bool {
	if t == Indeterminate {
		return permissive
	}
	return t == Satisfied
}

func (t Tri) String() string {
	switch t {
	case Satisfied:
		return "satisfied"
	case Unsatisfied:
		return "unsatisfied"
	}
	return "indeterminate"
}
