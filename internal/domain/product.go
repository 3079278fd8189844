package domain

// Product is a catalog entry.
type Product struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Price             float64   `json:"price"`
	Code              string    `json:"code"`
	HasExpirationDate bool      `json:"hasExpirationDate"`
	ExpirationDate    string    `json:"expirationDate,omitempty"`
	CategoryID        *int      `json:"productCategoryId,omitempty"`
	Category          *Category `json:"productCategory,omitempty"`
	ImageURL          string    `json:"imageUrl,omitempty"`
}

// Category groups products. Products is populated only on detail fetches.
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Code        string    `json:"productCategoryCode"`
	Products    []Product `json:"products,omitempty"`
}

// RegisterProductRequest creates a catalog entry.
type RegisterProductRequest struct {
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	Price             float64 `json:"price"`
	Code              string  `json:"code"`
	HasExpirationDate bool    `json:"hasExpirationDate"`
	ExpirationDate    string  `json:"expirationDate,omitempty"`
	CategoryID        int     `json:"productCategoryId"`
}

// UpdateProductRequest replaces a catalog entry.
type UpdateProductRequest struct {
	RegisterProductRequest
	ProductID int `json:"productId"`
}

// ProductSearchParams filters the paginated product listing. Prefix fields
// are optional; zero values are omitted from the query.
type ProductSearchParams struct {
	NamePrefix        string
	DescriptionPrefix string
	CodePrefix        string
	CategoryID        int
	PageParams
}

// RegisterCategoryRequest creates a category.
type RegisterCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
}

// UpdateCategoryRequest replaces a category.
type UpdateCategoryRequest struct {
	RegisterCategoryRequest
	ID int `json:"id"`
}

// CategorySearchParams filters the paginated category listing.
type CategorySearchParams struct {
	NamePrefix        string
	DescriptionPrefix string
	CodePrefix        string
	PageParams
}
