package explorer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bookie/bookie/pkg/serializer"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateParams checks the length limits declared on a parameter struct.
func validateParams(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return serializer.NewError(serializer.CodeParamTooLong,
			fmt.Sprintf("%s must be at most %s characters", strings.ToLower(f.Field()), f.Param()), nil)
	}

	return serializer.NewError(serializer.CodeParamErr, "Invalid parameters", err)
}

// parseID parses a user supplied identifier of the given kind ("folder", "file").
func parseID(raw, kind string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, serializer.NewError(serializer.CodeMissingID,
			fmt.Sprintf("%s ID is required, please provide the ID of the %s", capitalize(kind), kind), nil)
	}

	// Digits only, no sign and no leading zero.
	if strings.Trim(raw, "0123456789") != "" || raw[0] == '0' {
		return 0, invalidID(kind, raw)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidID(kind, raw)
	}

	return id, nil
}

func invalidID(kind, raw string) error {
	return serializer.NewError(serializer.CodeInvalidID,
		fmt.Sprintf("Invalid %s ID %q, please provide a valid numeric ID", kind, raw), nil)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func dbError(msg string, err error) error {
	return serializer.NewError(serializer.CodeDBError, msg, err)
}
