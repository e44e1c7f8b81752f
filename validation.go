package bricks

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// setid checks the catalog format of an ID.
	if err := validate.RegisterValidation("setid", func(fl validator.FieldLevel) bool {
		return idRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		it := sl.Current().Interface().(Item)
		for i, r := range it.Ranks() {
			if r < MinRank || r > MaxRank {
				sl.ReportError(r, "rank"+string(rune('A'+i)), "Rank", "rank", "")
			}
		}
		if !finite(it.PurchasePrice) || it.PurchasePrice < 0 {
			sl.ReportError(it.PurchasePrice, FieldPurchasePrice, "PurchasePrice", "price", "")
		}
		if !finite(it.CurrentPrice) || it.CurrentPrice < 0 {
			sl.ReportError(it.CurrentPrice, FieldCurrentPrice, "CurrentPrice", "price", "")
		}
		if it.Tags == nil {
			sl.ReportError(it.Tags, FieldTags, "Tags", "required", "")
		}
		for _, tag := range it.Tags {
			if strings.TrimSpace(tag) == "" {
				sl.ReportError(it.Tags, FieldTags, "Tags", "tag", "")
			}
		}
	}, Item{})
}

// ValidateItem checks that it obeys all the Item invariants.
//
// The error wraps ErrInvalidID when the id is not a valid ID.
func ValidateItem(it Item) error {
	var msgs []string
	ve := validateID(it.ID)
	if ve != nil {
		msgs = append(msgs, ve.Error())
	}
	if err := validate.Struct(it); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return err
		}
		for _, e := range errs {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), formatFieldError(e)))
		}
	}
	switch {
	case len(msgs) == 0:
		return nil
	case ve != nil:
		return fmt.Errorf("%w: %s", ErrInvalidID, strings.Join(msgs, "; "))
	default:
		return fmt.Errorf("invalid set %q: %s", it.ID, strings.Join(msgs, "; "))
	}
}

// validateID runs the setid rule on a single value.
func validateID(id ID) error {
	if err := validate.Var(string(id), "required,setid"); err != nil {
		return fmt.Errorf("setId %q must match ####-# (4-7 digits, dash, digits)", id)
	}
	return nil
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "rank":
		return fmt.Sprintf("must be between %d and %d", MinRank, MaxRank)
	case "price":
		return "must be a non-negative number"
	case "tag":
		return "tags cannot be empty"
	default:
		return fmt.Sprintf("failed on the %q rule", e.Tag())
	}
}
