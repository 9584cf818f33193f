package repository

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// Total is an approximate row count taken from planner statistics; it is
// meant for UI paging and can lag behind recent writes.
type PageResult[T any] struct {
	Items []T
	Total int64
}
