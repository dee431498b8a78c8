package menu

// SelectRadio sets the dot on the item of action's radio group whose
// payload matches, clearing it on the group's other items. A group is the
// set of sibling items sharing action. The tree is only replaced when some
// group contains the payload; the returned bool reports that.
func SelectRadio(nodes []Node, action, payload string) ([]Node, bool) {
	if !containsRadio(nodes, action, payload) {
		return nodes, false
	}
	out := cloneNodes(nodes)
	selectRadio(out, action, payload)
	return out, true
}

func containsRadio(nodes []Node, action, payload string) bool {
	for _, n := range nodes {
		switch v := n.(type) {
		case Item:
			if v.Action == action && payloadIs(v.Payload, payload) {
				return true
			}
		case Submenu:
			if containsRadio(v.Children, action, payload) {
				return true
			}
		}
	}
	return false
}

func selectRadio(nodes []Node, action, payload string) {
	hit := false
	for _, n := range nodes {
		if it, ok := n.(Item); ok && it.Action == action && payloadIs(it.Payload, payload) {
			hit = true
			break
		}
	}

	for i, n := range nodes {
		switch v := n.(type) {
		case Item:
			if hit && v.Action == action {
				v.Dot = payloadIs(v.Payload, payload)
				nodes[i] = v
			}
		case Submenu:
			selectRadio(v.Children, action, payload)
		}
	}
}

// SetCheck sets the check flag of every item firing action
func SetCheck(nodes []Node, action string, checked bool) ([]Node, bool) {
	return update(nodes, func(it *Item) bool {
		if it.Action != action || it.Check == checked {
			return false
		}
		it.Check = checked
		return true
	})
}

// SetDisabled enables or disables the items firing action. A nil payload
// matches every payload.
func SetDisabled(nodes []Node, action string, payload *string, disabled bool) ([]Node, bool) {
	return update(nodes, func(it *Item) bool {
		if it.Action != action || (payload != nil && !payloadIs(it.Payload, *payload)) {
			return false
		}
		if it.Disabled == disabled {
			return false
		}
		it.Disabled = disabled
		return true
	})
}

// update applies fn to a copy of every item and returns the copy when any
// call reported a change
func update(nodes []Node, fn func(it *Item) bool) ([]Node, bool) {
	out := cloneNodes(nodes)
	if !apply(out, fn) {
		return nodes, false
	}
	return out, true
}

func apply(nodes []Node, fn func(it *Item) bool) bool {
	changed := false
	for i, n := range nodes {
		switch v := n.(type) {
		case Item:
			if fn(&v) {
				nodes[i] = v
				changed = true
			}
		case Submenu:
			if apply(v.Children, fn) {
				changed = true
			}
		}
	}
	return changed
}

// Selected returns the payload of the dotted item in action's group
func Selected(nodes []Node, action string) (string, bool) {
	for _, n := range nodes {
		switch v := n.(type) {
		case Item:
			if v.Action == action && v.Dot && v.Payload != nil {
				return *v.Payload, true
			}
		case Submenu:
			if p, ok := Selected(v.Children, action); ok {
				return p, true
			}
		}
	}
	return "", false
}
