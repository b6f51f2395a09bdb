package storagetest

import (
	"fmt"
	"sync/atomic"

	randomdata "github.com/Pallinder/go-randomdata"

	"recordkeeper/internal/domain/book"
	"recordkeeper/internal/domain/product"
	"recordkeeper/internal/domain/user"
)

var seq atomic.Int64

// RandomUser returns a user whose email and phone number are unique
// within the test binary.
func RandomUser() user.User {
	n := seq.Add(1)
	return user.User{
		FirstName:   randomdata.FirstName(randomdata.RandomGender),
		LastName:    randomdata.LastName(),
		Email:       fmt.Sprintf("%s.%d@example.com", randomdata.Noun(), n),
		PhoneNumber: fmt.Sprintf("+1%09d", n),
		Salary:      float64(randomdata.Number(1000, 9000)) + 0.5,
	}
}

func RandomBook() book.Book {
	return book.Book{
		Title:         randomdata.Adjective() + " " + randomdata.Noun(),
		Author:        randomdata.FirstName(randomdata.RandomGender) + " " + randomdata.LastName(),
		Publisher:     randomdata.SillyName(),
		PublishedDate: fmt.Sprintf("%d-%02d-%02d", randomdata.Number(1900, 2024), randomdata.Number(1, 13), randomdata.Number(1, 29)),
		PageCount:     randomdata.Number(10, 900),
		Language:      "en",
	}
}

func RandomProduct() product.Product {
	return product.Product{
		Name:        randomdata.SillyName(),
		Description: randomdata.Paragraph(),
		Price:       randomdata.Number(0, 100000),
	}
}
