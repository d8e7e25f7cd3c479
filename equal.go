package config

// Equal reports whether v and o hold the same variant and the same data.
// Lists compare element by element.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.num == o.num
	case KindBool:
		return v.flag == o.flag
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
