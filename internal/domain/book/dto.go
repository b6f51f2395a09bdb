package book

import (
	"errors"
	"strings"
	"time"

	"recordkeeper/internal/domain/record"
)

const DateLayout = time.DateOnly

type CreateRequest struct {
	Title         string `json:"title" example:"Dune"`
	Author        string `json:"author" example:"Frank Herbert"`
	Publisher     string `json:"publisher,omitempty" example:"Chilton"`
	PublishedDate string `json:"published_date" example:"1965-08-01" doc:"Publication date, YYYY-MM-DD"`
	PageCount     int    `json:"page_count" example:"412"`
	Language      string `json:"language,omitempty" example:"en"`
}

// UpdateRequest carries every field except the publication date, which
// is fixed once the book is created.
type UpdateRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher,omitempty"`
	PageCount int    `json:"page_count"`
	Language  string `json:"language,omitempty"`
}

type Response struct {
	ID            int64  `json:"id" example:"1" doc:"Book ID"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date"`
	PageCount     int    `json:"page_count"`
	Language      string `json:"language"`
}

func (r CreateRequest) Validate() error {
	var errs record.FieldErrors
	validateCommon(&errs, r.Title, r.Author, r.PageCount)
	if _, err := time.Parse(DateLayout, r.PublishedDate); err != nil {
		errs.Add("published_date", "must be a date in YYYY-MM-DD form", r.PublishedDate)
	}
	return errs.Err()
}

func (r CreateRequest) Build() Book {
	return Book{
		Title:         r.Title,
		Author:        r.Author,
		Publisher:     r.Publisher,
		PublishedDate: r.PublishedDate,
		PageCount:     r.PageCount,
		Language:      r.Language,
	}
}

func (r UpdateRequest) Validate() error {
	var errs record.FieldErrors
	validateCommon(&errs, r.Title, r.Author, r.PageCount)
	return errs.Err()
}

func (r UpdateRequest) Apply(b *Book) {
	b.Title = r.Title
	b.Author = r.Author
	b.Publisher = r.Publisher
	b.PageCount = r.PageCount
	b.Language = r.Language
}

func NewResponse(b Book) Response {
	return Response(b)
}

func validateCommon(errs *record.FieldErrors, title, author string, pages int) {
	errs.Check("title", title, notBlank(title))
	errs.Check("author", author, notBlank(author))
	if pages < 0 {
		errs.Add("page_count", "must not be negative", pages)
	}
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
}
