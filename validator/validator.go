package validator

import (
	"strconv"
	"strings"
	"time"

	"roomrent/constants"
	"roomrent/errors"
	"roomrent/models"
	"roomrent/services"
)

// ParseDate parses a YYYY-MM-DD query value. Empty input yields nil.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidInput, "invalid date "+value, err)
	}
	return &t, nil
}

// ParseStay parses both bounds of an order. Both are required and start must
// not be after end.
func ParseStay(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start == nil || end == nil {
		return time.Time{}, time.Time{}, errors.InvalidInput("start and end dates are required")
	}
	if start.After(*end) {
		return time.Time{}, time.Time{}, errors.InvalidInput("start date is after end date")
	}
	return *start, *end, nil
}

// SearchParams are the raw query values of the house list.
type SearchParams struct {
	AreaID    string
	StartDate string
	EndDate   string
	Sort      string
	Page      string
}

// ParseSearch turns query values into a filter. A missing page is page 1 and
// an unparsable one is rejected.
func ParseSearch(p SearchParams) (services.HouseFilter, error) {
	var f services.HouseFilter

	start, err := ParseDate(p.StartDate)
	if err != nil {
		return f, err
	}
	end, err := ParseDate(p.EndDate)
	if err != nil {
		return f, err
	}
	if start != nil && end != nil && start.After(*end) {
		return f, errors.InvalidInput("start date is after end date")
	}
	f.Range = models.DateRange{Start: start, End: end}

	if a := strings.TrimSpace(p.AreaID); a != "" {
		id, err := strconv.ParseUint(a, 10, 32)
		if err != nil {
			return f, errors.NewAppError(errors.ErrCodeInvalidInput, "invalid area id", err)
		}
		f.AreaID = uint(id)
	}

	f.Page = 1
	if pg := strings.TrimSpace(p.Page); pg != "" {
		n, err := strconv.Atoi(pg)
		if err != nil || n < 1 {
			return f, errors.InvalidInput("invalid page")
		}
		f.Page = n
	}

	f.Sort = services.NormalizeSort(strings.TrimSpace(p.Sort))
	return f, nil
}

// ParseID parses a positive path id.
func ParseID(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.InvalidInput("invalid id")
	}
	return uint(id), nil
}
