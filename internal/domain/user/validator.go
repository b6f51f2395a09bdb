package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

const PhonePrefix = '+'

// ValidateName валидирует имя и фамилию
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("must not be blank")
	}

	return nil
}

// ValidateEmail валидирует адрес почты
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("must be a valid email address")
	}

	return nil
}

// ValidatePhoneNumber требует '+' и только цифры после него
func ValidatePhoneNumber(phone string) error {
	if len(phone) == 0 || phone[0] != PhonePrefix {
		return fmt.Errorf("phone number must start with '%c'", PhonePrefix)
	}

	digits := phone[1:]
	if digits == "" {
		return fmt.Errorf("phone number must contain digits only after '%c'", PhonePrefix)
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone number must contain digits only after '%c'", PhonePrefix)
		}
	}

	return nil
}

func ValidateSalary(salary float64) error {
	if salary < 0 {
		return errors.New("must not be negative")
	}
	return nil
}
