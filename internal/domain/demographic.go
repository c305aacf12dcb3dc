package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DemographicType type
type DemographicType string

const (
	// DemographicTypeGender const
	DemographicTypeGender DemographicType = "gender"
	// DemographicTypeAge const
	DemographicTypeAge DemographicType = "age"
	// DemographicTypeAppType const
	DemographicTypeAppType DemographicType = "appType"
	// DemographicTypeArea const
	DemographicTypeArea DemographicType = "area"
	// DemographicTypeSubscriptionPeriod const
	DemographicTypeSubscriptionPeriod DemographicType = "subscriptionPeriod"
)

var (
	demographicGenders      = []string{"male", "female"}
	demographicAppTypes     = []string{"ios", "android"}
	demographicAges         = []string{"age_15", "age_20", "age_25", "age_30", "age_35", "age_40", "age_45", "age_50"}
	demographicSubscription = []string{"day_7", "day_30", "day_90", "day_180", "day_365"}

	// highest area number per country prefix
	demographicAreaRanges = map[string]int{"jp": 47, "tw": 22, "th": 8, "id": 12}
)

// DemographicCondition is a demographic filter leaf. OneOf is used by gender,
// appType and area; Gte and Lt by age and subscriptionPeriod.
type DemographicCondition struct {
	Type  DemographicType
	OneOf []string
	Gte   string
	Lt    string
}

// DemographicFilter is the demographic tree of a narrowcast filter
type DemographicFilter = FilterNode[DemographicCondition]

// GenderIn func
func GenderIn(genders ...string) DemographicFilter {
	return Leaf(DemographicCondition{Type: DemographicTypeGender, OneOf: genders})
}

// AppTypeIn func
func AppTypeIn(appTypes ...string) DemographicFilter {
	return Leaf(DemographicCondition{Type: DemographicTypeAppType, OneOf: appTypes})
}

// AreaIn func
func AreaIn(areas ...string) DemographicFilter {
	return Leaf(DemographicCondition{Type: DemographicTypeArea, OneOf: areas})
}

// AgeRange func - either gte or lt may be empty for an open bound
func AgeRange(gte, lt string) DemographicFilter {
	return Leaf(DemographicCondition{Type: DemographicTypeAge, Gte: gte, Lt: lt})
}

// SubscriptionPeriodRange func - either gte or lt may be empty for an open bound
func SubscriptionPeriodRange(gte, lt string) DemographicFilter {
	return Leaf(DemographicCondition{Type: DemographicTypeSubscriptionPeriod, Gte: gte, Lt: lt})
}

// Validate func
func (c DemographicCondition) Validate() error {
	switch c.Type {
	case DemographicTypeGender:
		return validateOneOf(c.Type, c.OneOf, func(v string) bool { return contains(demographicGenders, v) })
	case DemographicTypeAppType:
		return validateOneOf(c.Type, c.OneOf, func(v string) bool { return contains(demographicAppTypes, v) })
	case DemographicTypeArea:
		return validateOneOf(c.Type, c.OneOf, isDemographicArea)
	case DemographicTypeAge:
		return validateRange(c.Type, c.Gte, c.Lt, demographicAges)
	case DemographicTypeSubscriptionPeriod:
		return validateRange(c.Type, c.Gte, c.Lt, demographicSubscription)
	default:
		return fmt.Errorf("%w: unknown demographic type %q", ErrInvalidRequest, c.Type)
	}
}

type demographicWire struct {
	Type  *DemographicType `json:"type"`
	OneOf []string         `json:"oneOf,omitempty"`
	Gte   string           `json:"gte,omitempty"`
	Lt    string           `json:"lt,omitempty"`
}

// MarshalJSON func
func (c DemographicCondition) MarshalJSON() ([]byte, error) {
	conditionType := c.Type
	w := demographicWire{Type: &conditionType}
	switch c.Type {
	case DemographicTypeAge, DemographicTypeSubscriptionPeriod:
		w.Gte, w.Lt = c.Gte, c.Lt
	default:
		w.OneOf = c.OneOf
	}
	return json.Marshal(w)
}

// UnmarshalJSON func
func (c *DemographicCondition) UnmarshalJSON(data []byte) error {
	const target = "DemographicCondition"

	var w demographicWire
	if err := json.Unmarshal(data, &w); err != nil {
		return &DecodeError{Target: target, Reason: "malformed json", Err: err}
	}
	if w.Type == nil {
		return missingField(target, "type")
	}

	out := DemographicCondition{Type: *w.Type}
	switch *w.Type {
	case DemographicTypeGender, DemographicTypeAppType, DemographicTypeArea:
		if len(w.OneOf) == 0 {
			return missingField(target, "oneOf")
		}
		out.OneOf = w.OneOf
	case DemographicTypeAge, DemographicTypeSubscriptionPeriod:
		out.Gte, out.Lt = w.Gte, w.Lt
	default:
		return unknownValue(target, "type", string(*w.Type))
	}
	if err := out.Validate(); err != nil {
		return &DecodeError{Target: target, Reason: "invalid condition", Err: err}
	}

	*c = out
	return nil
}

func validateOneOf(t DemographicType, values []string, allowed func(string) bool) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: %s needs at least one oneOf value", ErrInvalidRequest, t)
	}
	for _, v := range values {
		if !allowed(v) {
			return fmt.Errorf("%w: %s does not accept %q", ErrInvalidRequest, t, v)
		}
	}
	return nil
}

func validateRange(t DemographicType, gte, lt string, ordered []string) error {
	if gte == "" && lt == "" {
		return fmt.Errorf("%w: %s needs gte or lt", ErrInvalidRequest, t)
	}
	gteIdx, ltIdx := -1, -1
	if gte != "" {
		if gteIdx = indexOf(ordered, gte); gteIdx < 0 {
			return fmt.Errorf("%w: %s does not accept gte %q", ErrInvalidRequest, t, gte)
		}
	}
	if lt != "" {
		if ltIdx = indexOf(ordered, lt); ltIdx < 0 {
			return fmt.Errorf("%w: %s does not accept lt %q", ErrInvalidRequest, t, lt)
		}
	}
	if gteIdx >= 0 && ltIdx >= 0 && gteIdx >= ltIdx {
		return fmt.Errorf("%w: %s gte %q must be lower than lt %q", ErrInvalidRequest, t, gte, lt)
	}
	return nil
}

func isDemographicArea(v string) bool {
	prefix, number, ok := strings.Cut(v, "_")
	if !ok || len(number) != 2 {
		return false
	}
	highest, ok := demographicAreaRanges[prefix]
	if !ok {
		return false
	}
	n, err := strconv.Atoi(number)
	return err == nil && n >= 1 && n <= highest
}

func contains(values []string, v string) bool {
	return indexOf(values, v) >= 0
}

func indexOf(values []string, v string) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return -1
}
