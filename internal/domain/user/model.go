package user

// User is a stored person record. Email and PhoneNumber are unique.
type User struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Salary      float64 `json:"salary"`
}
