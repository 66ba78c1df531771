package configuration

// Merge layers base and then environment over defaults. Later layers win at
// every leaf; nested mappings are merged recursively; sequences and nils
// replace the earlier value outright. The inputs are never modified.
func Merge(defaults, base, environment Tree) Tree {
	return MergeTrees(MergeTrees(defaults, base), environment)
}

// MergeTrees is the right-biased deep merge of two trees.
func MergeTrees(left, right Tree) Tree {
	out := left.Clone()
	for key, rv := range right {
		lv, exists := out[key]
		if exists {
			lt, lok := asTree(lv)
			rt, rok := asTree(rv)
			if lok && rok {
				out[key] = MergeTrees(lt, rt)
				continue
			}
		}
		out[key] = cloneValue(rv)
	}

	return out
}
