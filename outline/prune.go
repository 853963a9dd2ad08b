// CLAUDE:SUMMARY Tree post-processor — prunes near-empty leaves and repairs child links.
package outline

// prune discards degenerate sections and repairs dangling child references.
// Levels and ids are retained verbatim; no re-leveling occurs. A discarded
// section's children are not re-parented — their parent pointers are kept
// as constructed even when they no longer resolve.
func (e *Engine) prune(sections []*Section) []Section {
	var kept []*Section
	for _, s := range sections {
		if len([]rune(s.Content)) <= e.w.MinContentLen && len(s.Children) == 0 {
			continue
		}
		kept = append(kept, s)
	}

	present := make(map[string]bool, len(kept))
	for _, s := range kept {
		present[s.ID] = true
	}

	out := make([]Section, 0, len(kept))
	for _, s := range kept {
		var children []string
		for _, id := range s.Children {
			if present[id] {
				children = append(children, id)
			}
		}
		s.Children = children
		out = append(out, *s)
	}
	return out
}
