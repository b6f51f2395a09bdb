package storage

import (
	"recordkeeper/internal/domain/book"
	"recordkeeper/internal/domain/product"
	"recordkeeper/internal/domain/user"
)

var Users = Table[user.User]{
	Name:    "users",
	Columns: []string{"first_name", "last_name", "email", "phone_number", "salary"},
	Unique:  []string{"email", "phone_number"},
	ID:      func(u *user.User) *int64 { return &u.ID },
	Fields: func(u *user.User) []any {
		return []any{&u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber, &u.Salary}
	},
}

var Books = Table[book.Book]{
	Name:    "books",
	Columns: []string{"title", "author", "publisher", "published_date", "page_count", "language"},
	ID:      func(b *book.Book) *int64 { return &b.ID },
	Fields: func(b *book.Book) []any {
		return []any{&b.Title, &b.Author, &b.Publisher, &b.PublishedDate, &b.PageCount, &b.Language}
	},
}

var Products = Table[product.Product]{
	Name:    "products",
	Columns: []string{"name", "description", "price"},
	ID:      func(p *product.Product) *int64 { return &p.ID },
	Fields: func(p *product.Product) []any {
		return []any{&p.Name, &p.Description, &p.Price}
	},
}
