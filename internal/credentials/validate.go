// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type usernameInput struct {
	// The username becomes part of Grading_result_<username>.csv.
	Username string `validate:"required,max=255,excludesall=/\\:*?\"<>0x7C"`
}

// ValidateUsername checks that name can be stored and used in a file name.
func ValidateUsername(name string) error {
	if err := validate.Struct(usernameInput{Username: name}); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidUsername, name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidUsername, name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control characters are not allowed", ErrInvalidUsername)
		}
	}
	return nil
}
