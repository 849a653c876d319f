package queryparams

import "strings"

// Sayfalama sınırları
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListParams liste uçlarının query string parametreleri.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"` // asc | desc
}

// DefaultListParams verilen sıralama kolonu ile varsayılan parametreleri döndürür.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: "desc",
	}
}

// Validate parametreleri güvenli aralıklara çeker.
func (p *ListParams) Validate() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = "desc"
	}
}

// Offset SQL offset değerini hesaplar.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// OrderClause izin verilen kolonlara karşı doğrulanmış ORDER BY ifadesi
// üretir. SortBy listede yoksa ilk kolon kullanılır (SQL injection önlemi).
func (p *ListParams) OrderClause(allowedColumns ...string) string {
	column := allowedColumns[0]
	for _, allowed := range allowedColumns {
		if strings.EqualFold(p.SortBy, allowed) {
			column = allowed
			break
		}
	}
	return column + " " + p.OrderBy
}

// PaginationMeta sayfalama üst verisi.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult sayfalanmış liste sonucu.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// CalculateTotalPages toplam sayfa sayısını hesaplar.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(totalItems) / perPage
	if int(totalItems)%perPage != 0 {
		pages++
	}
	return pages
}
