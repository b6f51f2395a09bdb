package product

import (
	"errors"
	"strings"

	"recordkeeper/internal/domain/record"
)

// Product is a stored catalogue item. Price is in minor currency units.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

type CreateRequest struct {
	Name        string `json:"name" example:"Lamp"`
	Description string `json:"description" example:"Desk lamp"`
	Price       int    `json:"price" example:"1999"`
}

type UpdateRequest CreateRequest

type Response struct {
	ID          int64  `json:"id" example:"1" doc:"Product ID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

func (r CreateRequest) Validate() error {
	var errs record.FieldErrors
	if strings.TrimSpace(r.Name) == "" {
		errs.Add("name", "must not be blank", r.Name)
	}
	errs.Check("price", r.Price, validatePrice(r.Price))
	return errs.Err()
}

func (r CreateRequest) Build() Product {
	return Product{Name: r.Name, Description: r.Description, Price: r.Price}
}

func (r UpdateRequest) Validate() error { return CreateRequest(r).Validate() }

func (r UpdateRequest) Apply(p *Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.Price = r.Price
}

func NewResponse(p Product) Response {
	return Response(p)
}

func validatePrice(price int) error {
	if price < 0 {
		return errors.New("must not be negative")
	}
	return nil
}
