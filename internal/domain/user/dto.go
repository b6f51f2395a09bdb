package user

import "recordkeeper/internal/domain/record"

type CreateRequest struct {
	FirstName   string  `json:"first_name" example:"Ann" doc:"First name"`
	LastName    string  `json:"last_name" example:"Lee" doc:"Last name"`
	Email       string  `json:"email" example:"ann@example.com" doc:"Contact address, unique"`
	PhoneNumber string  `json:"phone_number" example:"+15550100" doc:"Phone number: '+' followed by digits, unique"`
	Salary      float64 `json:"salary" example:"1200.5" doc:"Salary"`
}

// UpdateRequest replaces every mutable field.
type UpdateRequest CreateRequest

type Response struct {
	ID          int64   `json:"id" example:"1" doc:"User ID"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Salary      float64 `json:"salary"`
}

func (r CreateRequest) Validate() error {
	var errs record.FieldErrors
	errs.Check("first_name", r.FirstName, ValidateName(r.FirstName))
	errs.Check("last_name", r.LastName, ValidateName(r.LastName))
	errs.Check("email", r.Email, ValidateEmail(r.Email))
	errs.Check("phone_number", r.PhoneNumber, ValidatePhoneNumber(r.PhoneNumber))
	errs.Check("salary", r.Salary, ValidateSalary(r.Salary))
	return errs.Err()
}

func (r CreateRequest) Build() User {
	return User{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Salary:      r.Salary,
	}
}

func (r UpdateRequest) Validate() error {
	return CreateRequest(r).Validate()
}

func (r UpdateRequest) Apply(u *User) {
	u.FirstName = r.FirstName
	u.LastName = r.LastName
	u.Email = r.Email
	u.PhoneNumber = r.PhoneNumber
	u.Salary = r.Salary
}

func NewResponse(u User) Response {
	return Response{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Salary:      u.Salary,
	}
}
