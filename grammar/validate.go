package grammar

// Validate checks that every reference in every rule names a defined rule.
// All problems are reported together in a *ValidationError.
func (s Store) Validate() error {
	var errs []error
	for _, id := range s.IDs() {
		tree, _ := s.Get(id)
		for _, ref := range Refs(tree) {
			if !s.Has(ref) {
				errs = append(errs, &UnknownRuleError{ID: ref, From: []RuleID{id}})
			}
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errs: errs}
	}
	return nil
}
