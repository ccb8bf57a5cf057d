package handlers

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground/validator to implement echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// StartGameRequest is the setup form.
type StartGameRequest struct {
	NumPlayers int    `form:"num_players" validate:"required,min=1,max=4"`
	Player1    string `form:"player1"`
	Player2    string `form:"player2"`
	Player3    string `form:"player3"`
	Player4    string `form:"player4"`
}

// Names returns the names of the seats in play with runs of whitespace
// collapsed, so a blank name fails the required check.
func (r StartGameRequest) Names() []string {
	all := []string{r.Player1, r.Player2, r.Player3, r.Player4}
	n := min(max(r.NumPlayers, 0), len(all))
	names := make([]string, n)
	for i, name := range all[:n] {
		names[i] = strings.Join(strings.Fields(name), " ")
	}
	return names
}

// Roster is the validated list of player names.
type Roster struct {
	Names []string `validate:"min=1,max=4,dive,required,max=32"`
}

var indexedField = regexp.MustCompile(`^\w+\[(\d+)\]$`)

// ValidationMessages turns validator errors into messages for the setup form.
func ValidationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Please check the form and try again."}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if m := indexedField.FindStringSubmatch(fe.Field()); m != nil {
			seat, _ := strconv.Atoi(m[1])
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, fmt.Sprintf("Player %d needs a name.", seat+1))
			case "max":
				msgs = append(msgs, fmt.Sprintf("Player %d's name is too long (at most %s characters).", seat+1, fe.Param()))
			default:
				msgs = append(msgs, fmt.Sprintf("Player %d's name is not valid.", seat+1))
			}
			continue
		}
		switch fe.Field() {
		case "NumPlayers":
			msgs = append(msgs, "Choose between 1 and 4 players.")
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not valid.", fe.Field()))
		}
	}
	return msgs
}
