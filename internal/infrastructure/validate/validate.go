// Package validate holds small composable validators for form input.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// Validator checks a single string value.
type Validator func(value string) error

// Field prefixes the first failing validator's error with the field name.
func Field(name string, validators ...Validator) Validator {
	check := Compose(validators...)
	return func(value string) error {
		if err := check(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}
}

// Compose runs validators in order; the first error wins.
func Compose(validators ...Validator) Validator {
	return func(value string) error {
		for _, v := range validators {
			if err := v(value); err != nil {
				return err
			}
		}
		return nil
	}
}

func Required() Validator {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("is required")
		}
		return nil
	}
}

func MinLength(min int) Validator {
	return func(v string) error {
		if len(v) < min {
			return fmt.Errorf("must be at least %d characters", min)
		}
		return nil
	}
}

func MaxLength(max int) Validator {
	return func(v string) error {
		if len(v) > max {
			return fmt.Errorf("must be no more than %d characters", max)
		}
		return nil
	}
}

func LengthBetween(min, max int) Validator {
	return Compose(MinLength(min), MaxLength(max))
}

// DigitsOnly accepts ASCII 0-9 only. Empty values pass; pair it with Required.
func DigitsOnly() Validator {
	return func(v string) error {
		for _, c := range v {
			if c < '0' || c > '9' {
				return fmt.Errorf("must contain only digits")
			}
		}
		return nil
	}
}

// Email accepts a bare address only, not "Name <addr>".
func Email() Validator {
	return func(v string) error {
		if v == "" {
			return nil
		}
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return fmt.Errorf("must be a valid email address")
		}
		return nil
	}
}

func Matches(pattern, message string) Validator {
	re := regexp.MustCompile(pattern)
	return func(v string) error {
		if !re.MatchString(v) {
			if message != "" {
				return fmt.Errorf("%s", message)
			}
			return fmt.Errorf("invalid format")
		}
		return nil
	}
}

func OneOf(allowed ...string) Validator {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(v string) error {
		if _, ok := set[v]; !ok {
			return fmt.Errorf("must be one of: %s", strings.Join(allowed, ", "))
		}
		return nil
	}
}

func NoSpaces() Validator {
	return Matches(`^\S+$`, "must not contain spaces")
}
