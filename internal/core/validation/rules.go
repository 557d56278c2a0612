package validation

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
	"github.com/shopspring/decimal"
)

// bound is one end of a numeric range.
type bound struct {
	value     decimal.Decimal
	inclusive bool
}

func above(v int64) *bound   { return &bound{value: decimal.NewFromInt(v)} }
func atLeast(v int64) *bound { return &bound{value: decimal.NewFromInt(v), inclusive: true} }
func atMost(v int64) *bound  { return &bound{value: decimal.NewFromInt(v), inclusive: true} }

// numberRule describes the accepted range of a numeric field.
type numberRule struct {
	min *bound
	max *bound
}

// checkNumber validates in against rule. It returns the parsed value and whether the
// text was a number at all, so cross-field rules can still run after a range error.
func (c *collector) checkNumber(field string, in domain.NumericInput, rule numberRule) (decimal.Decimal, bool) {
	if in.IsEmpty() {
		c.add(field, i18n.MsgRequired)
		return decimal.Zero, false
	}
	value, ok := in.Decimal()
	if !ok {
		c.add(field, i18n.MsgNotNumber)
		return decimal.Zero, false
	}
	if rule.min != nil {
		if rule.min.inclusive && value.LessThan(rule.min.value) {
			c.add(field, i18n.MsgAtLeast, c.t.Number(rule.min.value))
		} else if !rule.min.inclusive && value.LessThanOrEqual(rule.min.value) {
			c.add(field, i18n.MsgGreaterThan, c.t.Number(rule.min.value))
		}
	}
	if rule.max != nil {
		if (rule.max.inclusive && value.GreaterThan(rule.max.value)) ||
			(!rule.max.inclusive && value.GreaterThanOrEqual(rule.max.value)) {
			c.add(field, i18n.MsgAtMost, c.t.Number(rule.max.value))
		}
	}
	return value, true
}

// checkText requires a non-blank value of at most maxLen runes (0 means unbounded).
func (c *collector) checkText(field, value string, maxLen int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		c.add(field, i18n.MsgRequired)
		return
	}
	if maxLen > 0 && utf8.RuneCountInString(trimmed) > maxLen {
		c.add(field, i18n.MsgMaxLength, strconv.Itoa(maxLen))
	}
}

// checkOneOf requires value to be one of allowed.
func (c *collector) checkOneOf(field, value string, allowed ...string) {
	if strings.TrimSpace(value) == "" {
		c.add(field, i18n.MsgRequired)
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	c.add(field, i18n.MsgOneOf, strings.Join(allowed, ", "))
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// parseDate accepts calendar dates and RFC 3339 timestamps. Bare dates and local
// timestamps are read in loc.
func parseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// checkDate requires a parseable date and returns it.
func (c *collector) checkDate(field, value string, loc *time.Location) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		c.add(field, i18n.MsgRequired)
		return time.Time{}, false
	}
	t, ok := parseDate(value, loc)
	if !ok {
		c.add(field, i18n.MsgInvalidDate)
		return time.Time{}, false
	}
	return t, true
}

// civilDay truncates t to midnight of its calendar day in loc.
func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
