package usertests

import (
	"fmt"

	"github.com/usersapi/users-contract-tests/servicedef"
)

func ivanUser() servicedef.UserParams {
	return servicedef.UserParams{
		FirstName:  "Ivan",
		LastName:   "Ivanov",
		DayOfBirth: "2000-01-15",
		Email:      "ivanov@test.com",
	}
}

func alexeiUser() servicedef.UserParams {
	return servicedef.UserParams{
		FirstName:  "Alexei",
		LastName:   "Alexeev",
		DayOfBirth: "2002-01-15",
		Email:      "alexeev@test.com",
	}
}

func fillerUser(n int) servicedef.UserParams {
	return servicedef.UserParams{
		FirstName:  "Filler",
		LastName:   fmt.Sprintf("User%d", n),
		DayOfBirth: "1990-06-01",
		Email:      fmt.Sprintf("filler%d@test.com", n),
	}
}

func withDayOfBirth(params servicedef.UserParams, dayOfBirth string) servicedef.UserParams {
	params.DayOfBirth = dayOfBirth
	return params
}
