// Package validate checks struct fields against rules in the `validate`
// tag, comma separated. Errors are keyed by the field's json name so
// controllers can return them to API clients as-is.
//
//	type registerInput struct {
//	    Name     string `json:"name"     validate:"required,min=2,max=100"`
//	    Email    string `json:"email"    validate:"required,email"`
//	    Role     string `json:"role"     validate:"required,in=admin,customer"`
//	    Phone    string `json:"phone"    validate:"nullable,digits=10"`
//	}
//
// Supported rules:
//
//	required          non-zero value
//	nullable          empty value skips the remaining rules
//	email             well-formed email address
//	url               http or https URL
//	numeric           parses as a number
//	integer           parses as a whole number
//	min=N, max=N      char length bound for strings, value bound for numbers
//	size=N            exact string length
//	gt, gte, lt, lte  numeric comparisons
//	between=lo,hi     inclusive range, length for strings
//	digits=N          exactly N decimal digits
//	in=a,b,c          closed set of allowed values
//	not_in=a,b,c      rejected values
//	regex=pattern     must match pattern (no commas inside the pattern)
//	confirmed         must equal the sibling <field>_confirmation
//
// Nested slice-of-struct fields are not walked. Callers validate those
// items by hand.
package validate

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Struct runs every tagged rule on v, which must be a struct or pointer
// to one. The result maps json field names to the first failing rule's
// message. An empty map means the value passed.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("validate")
		if tag == "" {
			continue
		}
		name := jsonName(rt.Field(i))
		value := rv.Field(i)
		rules := splitRules(tag)

		if containsRule(rules, "nullable") && isZero(value) {
			continue
		}
		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := check(rule, name, value, rv); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
	return errs
}

// HasErrors reports whether Struct found anything.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

var (
	emailRE  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitsRE = regexp.MustCompile(`^\d+$`)
)

func check(rule, field string, v reflect.Value, parent reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	name, param, _ := strings.Cut(rule, "=")

	switch name {
	case "required":
		if isZero(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "url":
		u, err := url.ParseRequestURI(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Sprintf("The %s must be a valid URL.", field)
		}
	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}

	case "min":
		bound := parseNum(param)
		if isNumeric(v) {
			if asFloat(v) < bound {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if float64(len([]rune(raw))) < bound {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
	case "max":
		bound := parseNum(param)
		if isNumeric(v) {
			if asFloat(v) > bound {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if float64(len([]rune(raw))) > bound {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "size":
		if float64(len([]rune(raw))) != parseNum(param) {
			return fmt.Sprintf("The %s must be exactly %s characters.", field, param)
		}
	case "gt":
		if asFloat(v) <= parseNum(param) {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if asFloat(v) < parseNum(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lt":
		if asFloat(v) >= parseNum(param) {
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		}
	case "lte":
		if asFloat(v) > parseNum(param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	case "between":
		lo, hi, ok := strings.Cut(param, ",")
		if ok {
			low, high := parseNum(lo), parseNum(hi)
			measured := asFloat(v)
			unit := ""
			if !isNumeric(v) {
				measured = float64(len([]rune(raw)))
				unit = " characters"
			}
			if measured < low || measured > high {
				return fmt.Sprintf("The %s must be between %s and %s%s.", field, lo, hi, unit)
			}
		}
	case "digits":
		if !digitsRE.MatchString(raw) || float64(len(raw)) != parseNum(param) {
			return fmt.Sprintf("The %s must be %s digits.", field, param)
		}

	case "in":
		for _, allowed := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "not_in":
		for _, banned := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(banned) {
				return fmt.Sprintf("The selected %s is invalid.", field)
			}
		}

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil {
			return fmt.Sprintf("The %s has an invalid validation pattern.", field)
		}
		if !re.MatchString(raw) {
			return fmt.Sprintf("The %s format is invalid.", field)
		}

	case "confirmed":
		sibling, found := siblingValue(parent, confirmationPeer(field))
		if !found || fmt.Sprintf("%v", sibling.Interface()) != raw {
			return fmt.Sprintf("The %s confirmation does not match.", field)
		}
	}
	return ""
}

// confirmationPeer maps "password_confirmation" to "password" and
// "password" to "password_confirmation".
func confirmationPeer(field string) string {
	const suffix = "_confirmation"
	if base, ok := strings.CutSuffix(field, suffix); ok {
		return base
	}
	return field + suffix
}

func siblingValue(parent reflect.Value, jsonField string) (reflect.Value, bool) {
	rt := parent.Type()
	for i := 0; i < rt.NumField(); i++ {
		if jsonName(rt.Field(i)) == jsonField {
			return parent.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		// false is a legitimate value.
		return false
	default:
		if isNumeric(v) {
			return asFloat(v) == 0
		}
	}
	return false
}

func isNumeric(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func asFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

func parseNum(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	name, _, _ = strings.Cut(name, ",")
	return name
}

// Rules whose parameter may itself contain commas, e.g. in=card,branch.
func multiValued(rule string) bool {
	return strings.HasPrefix(rule, "in=") ||
		strings.HasPrefix(rule, "not_in=") ||
		strings.HasPrefix(rule, "between=")
}

var ruleKeywords = []string{
	"required", "nullable", "email", "url", "numeric", "integer",
	"confirmed", "min=", "max=", "size=", "gt=", "gte=", "lt=", "lte=",
	"between=", "digits=", "in=", "not_in=", "regex=",
}

func startsNewRule(token string) bool {
	for _, kw := range ruleKeywords {
		if strings.HasPrefix(token, kw) {
			return true
		}
	}
	return false
}

// splitRules splits the tag on commas, folding tokens back into the
// previous rule when that rule takes a comma-separated parameter and the
// token is not itself a rule. "required,in=card,branch,max=20" becomes
// ["required", "in=card,branch", "max=20"].
func splitRules(tag string) []string {
	var rules []string
	for _, token := range strings.Split(tag, ",") {
		last := len(rules) - 1
		if last >= 0 && multiValued(rules[last]) && !startsNewRule(token) {
			rules[last] += "," + token
			continue
		}
		rules = append(rules, token)
	}
	return rules
}

func containsRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
