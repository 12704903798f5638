package utils

// DefaultPageSize размер страницы, если он не задан
const DefaultPageSize = 10

// Pagination описывает положение страницы в последовательности
type Pagination struct {
	Page       int `json:"page_number"` // Номер страницы (начиная с 1)
	PageSize   int `json:"page_size"`   // Размер страницы
	TotalItems int `json:"total_items"` // Общее количество элементов
	TotalPages int `json:"total_pages"` // Общее количество страниц
}

// NewPagination создает Pagination и пересчитывает число страниц.
// Номер страницы приводится к диапазону [1, TotalPages]; для пустой последовательности он равен 1.
func NewPagination(page, pageSize, totalItems int) *Pagination {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}

	p := &Pagination{
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: (totalItems + pageSize - 1) / pageSize,
	}

	switch {
	case page < 1:
		page = 1
	case p.TotalPages > 0 && page > p.TotalPages:
		page = p.TotalPages
	case p.TotalPages == 0:
		page = 1
	}
	p.Page = page

	return p
}

// GetOffset возвращает индекс первого элемента страницы
func (p *Pagination) GetOffset() int {
	return (p.Page - 1) * p.PageSize
}

// GetLimit возвращает размер страницы
func (p *Pagination) GetLimit() int {
	return p.PageSize
}

// HasNext сообщает, есть ли следующая страница
func (p *Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// Paginate возвращает элементы страницы pageNumber, общее число страниц и номер страницы,
// который фактически был использован после приведения к допустимому диапазону.
func Paginate[T any](items []T, pageNumber, pageSize int) ([]T, int, int) {
	p := NewPagination(pageNumber, pageSize, len(items))
	if p.TotalPages == 0 {
		return []T{}, 0, p.Page
	}

	start := p.GetOffset()
	end := start + p.GetLimit()
	if end > len(items) {
		end = len(items)
	}

	page := make([]T, end-start)
	copy(page, items[start:end])
	return page, p.TotalPages, p.Page
}
