package services

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/models"
	"github.com/go-playground/validator/v10"
)

// Password limits in bytes. bcrypt refuses passwords longer than 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type registration struct {
	Email          string `validate:"required,email,max=254"`
	Name           string `validate:"required,max=200"`
	PasswordLength int    `validate:"gte=6,lte=72"`
}

type documentInput struct {
	Name string `validate:"required,max=255,excludesall=/"`
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorValidation, err)
}

func validateRegistration(email, name string, password []byte) error {
	if err := validate.Struct(registration{Email: email, Name: name, PasswordLength: len(password)}); err != nil {
		return validationError(err)
	}
	return nil
}

func validatePassword(password []byte) error {
	if err := validate.Var(len(password), "gte=6,lte=72"); err != nil {
		return validationError(fmt.Errorf("password must be %d to %d bytes", MinPasswordLength, MaxPasswordLength))
	}
	return nil
}

func validateDocumentName(name string) error {
	if strings.ContainsRune(name, 0) {
		return validationError(fmt.Errorf("name must not contain NUL"))
	}
	if err := validate.Struct(documentInput{Name: name}); err != nil {
		return validationError(err)
	}
	return nil
}

// normalizePatch trims the supplied fields and rejects a blank name or a
// malformed avatar URL. An empty avatar clears it.
func normalizePatch(p *models.UserPatch) error {
	if p.Name != nil {
		n := strings.TrimSpace(*p.Name)
		if n == "" {
			return validationError(fmt.Errorf("name must not be empty"))
		}
		p.Name = &n
	}
	if p.AvatarURL != nil {
		a := strings.TrimSpace(*p.AvatarURL)
		if a != "" {
			if err := validate.Var(a, "url,max=2048"); err != nil {
				return validationError(err)
			}
		}
		p.AvatarURL = &a
	}
	return nil
}
