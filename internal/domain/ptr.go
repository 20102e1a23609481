package domain

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setSlice[T any](dst *[]T, src *[]T) {
	if src != nil {
		*dst = append([]T(nil), (*src)...)
	}
}
