package models

// ProductFilter фильтр пакетной выборки продуктов из каталога.
// PageSize обязан совпадать с размером локальной страницы, иначе страницы разойдутся.
type ProductFilter struct {
	PageSize    int  `json:"first"`
	IsPublished bool `json:"isPublished"`
}

// ToMap преобразует ProductFilter в переменные запроса каталога
func (f *ProductFilter) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"first":       f.PageSize,
		"isPublished": f.IsPublished,
	}
}
