package models

// Page is the paginated envelope returned by list endpoints.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

func (p Page[T]) Last() bool {
	return p.Number+1 >= p.TotalPages
}
